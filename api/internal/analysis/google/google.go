package google

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
	vision "google.golang.org/api/vision/v1"
)

// Engine talks to Cloud Vision (labels) and Cloud Translation v2.
type Engine struct {
	vision     *vision.Service
	translate  *translate.Service
	maxResults int64
}

func New(ctx context.Context, apiKey string, maxResults int64, opts ...option.ClientOption) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is empty")
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	vs, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	ts, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		vision:     vs,
		translate:  ts,
		maxResults: maxResults,
	}, nil
}

func (e *Engine) Name() string { return "google" }
