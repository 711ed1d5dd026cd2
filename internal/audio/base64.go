// Package audio decodes inbound audio payloads.
package audio

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64 decodes s the way lenient base64 readers do, and never fails.
// The URL-safe "-" and "_" are read as "+" and "/", even mixed with the standard alphabet.
// Characters outside the alphabet, whitespace included, are skipped. Decoding stops at the first "=".
// A single dangling character at the end carries no full byte and is dropped.
func DecodeBase64(s string) []byte {
	if i := strings.IndexByte(s, '='); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '-':
			b.WriteByte('+')
		case ch == '_':
			b.WriteByte('/')
		case ch == '+' || ch == '/',
			ch >= 'A' && ch <= 'Z',
			ch >= 'a' && ch <= 'z',
			ch >= '0' && ch <= '9':
			b.WriteByte(ch)
		}
	}

	cleaned := b.String()
	if len(cleaned)%4 == 1 {
		cleaned = cleaned[:len(cleaned)-1]
	}

	// cleaned is alphabet-only with a decodable length; RawStdEncoding is not strict,
	// so non-zero trailing bits are accepted
	data, _ := base64.RawStdEncoding.DecodeString(cleaned)
	return data
}
