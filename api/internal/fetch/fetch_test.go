package fetch

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchBinary(t *testing.T) {
	ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpeg)
	})

	b, err := New(time.Second).Fetch(context.Background(), ts.URL+"/img.jpg")
	require.NoError(t, err)
	assert.Equal(t, jpeg, b)
}

func TestFetchBase64Body(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"text plain", "text/plain", base64.StdEncoding.EncodeToString(jpeg)},
		{"application base64", "application/base64", base64.StdEncoding.EncodeToString(jpeg)},
		{"data url", "application/octet-stream", "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			})
			b, err := New(time.Second).Fetch(context.Background(), ts.URL)
			require.NoError(t, err)
			assert.Equal(t, jpeg, b)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	t.Run("non 2xx", func(t *testing.T) {
		ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		})
		_, err := New(time.Second).Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("empty body", func(t *testing.T) {
		ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		_, err := New(time.Second).Fetch(context.Background(), ts.URL)
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("bad base64", func(t *testing.T) {
		ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("not base64 at all!"))
		})
		_, err := New(time.Second).Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode base64")
	})

	t.Run("too large", func(t *testing.T) {
		ts := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(jpeg)
		})
		_, err := New(time.Second, WithMaxBytes(4)).Fetch(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "larger than 4 bytes")
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()
		_, err := New(time.Second).Fetch(context.Background(), url)
		assert.Error(t, err)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := New(time.Second).Fetch(context.Background(), "://nope")
		assert.Error(t, err)
	})
}

func TestWithHTTPClient(t *testing.T) {
	c := &http.Client{Timeout: time.Second}
	f := New(0, WithHTTPClient(c))
	assert.Same(t, c, f.httpc)
}
