package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	models "io.winapps.memorelay/internal/models/transcribe"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestSharedSecretAuth(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{name: "match", secret: "s3cret", header: "Bearer s3cret", status: http.StatusOK},
		{name: "missing header", secret: "s3cret", header: "", status: http.StatusUnauthorized},
		{name: "wrong secret", secret: "s3cret", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "wrong scheme", secret: "s3cret", header: "Token s3cret", status: http.StatusUnauthorized},
		{name: "lowercase scheme", secret: "s3cret", header: "bearer s3cret", status: http.StatusUnauthorized},
		{name: "trailing space", secret: "s3cret", header: "Bearer s3cret ", status: http.StatusUnauthorized},
		{name: "no secret configured", secret: "", header: "Bearer ", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/", SharedSecretAuth(tt.secret), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("got status %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusUnauthorized {
				resp := decodeError(t, rec)
				if resp.OK || resp.Error != "unauthorized" {
					t.Fatalf("unexpected body %+v", resp)
				}
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed("Use POST"))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, "PROPFIND"} {
		req := httptest.NewRequest(method, "/x", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: got status %d", method, rec.Code)
		}
		resp := decodeError(t, rec)
		if resp.OK || resp.Error != "Use POST" {
			t.Fatalf("%s: unexpected body %+v", method, resp)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Body.String() != "abc-123" || rec.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("expected propagated request id, got body %q header %q", rec.Body.String(), rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Body.String() == "" || rec.Body.String() != rec.Header().Get("X-Request-ID") {
		t.Fatalf("expected generated request id, got %q", rec.Body.String())
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zap.NewNop().Sugar()
	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggingMiddleware(logger), RecoveryMiddleware(logger))
	router.POST("/", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.OK || resp.Error != "boom" {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestRequestLoggingCapturesOnlyErrorBodies(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(RequestLoggingMiddleware(zap.New(core).Sugar()))
	router.POST("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.TranscribeResponse{OK: true, Text: "secret transcript"})
	})
	router.POST("/denied", SharedSecretAuth("s3cret"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/ok", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/denied", nil))

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	okFields := entries[0].ContextMap()
	if entries[0].Level != zapcore.InfoLevel || okFields["status"] != int64(http.StatusOK) {
		t.Fatalf("unexpected success entry %+v", okFields)
	}
	if _, ok := okFields["response"]; ok {
		t.Fatal("success body must not be logged")
	}

	deniedFields := entries[1].ContextMap()
	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[1].Level)
	}
	if deniedFields["response"] != `{"ok":false,"error":"unauthorized"}` {
		t.Fatalf("unexpected logged body %v", deniedFields["response"])
	}
}
