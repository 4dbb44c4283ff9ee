package util

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strings"
)

var (
	jpegMagic = []byte{0xFF, 0xD8}
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	gifMagic  = []byte("GIF8")
)

// SniffMimeHTTP returns the image MIME type of b, falling back to
// http.DetectContentType.
func SniffMimeHTTP(b []byte) string {
	switch {
	case bytes.HasPrefix(b, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(b, pngMagic):
		return "image/png"
	case bytes.HasPrefix(b, gifMagic):
		return "image/gif"
	case len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return "image/webp"
	case len(b) == 0:
		return "application/octet-stream"
	}
	return http.DetectContentType(b)
}

// IsImage reports whether b starts with a known image signature.
func IsImage(b []byte) bool {
	return strings.HasPrefix(SniffMimeHTTP(b), "image/")
}

// DecodeBase64MaybeDataURL decodes base64. For a data: URI it also returns
// the MIME type from the prefix.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	var hintMIME string
	if strings.HasPrefix(s, "data:") {
		// data:<mime>;base64,<payload>
		if idx := strings.IndexByte(s, ','); idx > 0 {
			meta := s[len("data:"):idx]
			hintMIME, _, _ = strings.Cut(meta, ";")
			s = s[idx+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, hintMIME, nil
	}
	if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, hintMIME, nil
	}
	if b3, err3 := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); err3 == nil {
		return b3, hintMIME, nil
	}
	return nil, "", err
}

// PickMIME prefers the explicit MIME, then the data: URI hint, then sniffs.
func PickMIME(explicit, hint string, data []byte) string {
	if exp := strings.TrimSpace(explicit); exp != "" {
		return exp
	}
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	if len(data) > 0 {
		return SniffMimeHTTP(data)
	}
	return "image/jpeg"
}
