package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"img-analysis/api/internal/util"
)

const DefaultTimeout = 60 * time.Second

var ErrEmptyBody = errors.New("empty body")

// Fetcher downloads image bytes over HTTP(S). One request per call, no retries.
type Fetcher struct {
	httpc    *http.Client
	maxBytes int64
}

type Option func(*Fetcher)

// WithHTTPClient replaces the client. Its transport is used as is.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpc = c }
}

// WithMaxBytes caps the body size; 0 means no cap.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

func New(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "image/*, */*;q=0.8")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(b)) > f.maxBytes {
		return nil, fmt.Errorf("image larger than %d bytes", f.maxBytes)
	}

	return decode(b, resp.Header.Get("Content-Type"))
}

// decode turns the transport representation into raw image bytes.
// Binary bodies pass through; base64 text bodies are decoded.
func decode(b []byte, contentType string) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrEmptyBody
	}
	if !isBase64Payload(b, contentType) {
		return b, nil
	}
	raw, _, err := util.DecodeBase64MaybeDataURL(string(b))
	if err != nil {
		return nil, fmt.Errorf("decode base64 body: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyBody
	}
	return raw, nil
}

func isBase64Payload(b []byte, contentType string) bool {
	if bytes.HasPrefix(bytes.TrimSpace(b), []byte("data:")) {
		return true
	}
	if util.IsImage(b) {
		return false
	}
	mt, params, _ := mime.ParseMediaType(contentType)
	switch mt {
	case "application/base64":
		return true
	case "text/plain":
		return true
	}
	return strings.EqualFold(params["encoding"], "base64")
}
