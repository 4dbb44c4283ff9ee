package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"img-analysis/api/internal/analysis"
	"img-analysis/api/internal/analysis/gemini"
	"img-analysis/api/internal/analysis/google"
	"img-analysis/api/internal/analysis/openai"
	"img-analysis/api/internal/config"
	"img-analysis/api/internal/fetch"
	"img-analysis/api/internal/handle"
)

// buildHandle creates the capability clients once and injects them.
func buildHandle(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*handle.Handle, error) {
	engines := analysis.NewEngines()
	used := map[string]bool{cfg.VisionEngine: true, cfg.TranslateEngine: true}

	if used["google"] {
		g, err := google.New(ctx, cfg.GoogleAPIKey, cfg.Labels.MaxResults)
		if err != nil {
			return nil, err
		}
		engines.AddLabeler(g)
		engines.AddTranslator(g)
	}
	if used["gemini"] {
		g := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
		engines.AddLabeler(g)
		engines.AddTranslator(g)
	}
	if used["openai"] {
		o := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		engines.AddLabeler(o)
		engines.AddTranslator(o)
	}

	labeler, err := engines.GetLabeler(cfg.VisionEngine)
	if err != nil {
		return nil, err
	}
	translator, err := engines.GetTranslator(cfg.TranslateEngine)
	if err != nil {
		return nil, err
	}

	pipeline := analysis.NewPipeline(
		fetch.New(cfg.Fetch.Timeout, fetch.WithMaxBytes(cfg.Fetch.MaxBytes)),
		analysis.NewLabelDetector(labeler, cfg.Labels.MinConfidence),
		analysis.NewTranslator(translator, cfg.TranslatorOptions()),
		cfg.StageTimeout,
	)
	return handle.New(pipeline, log), nil
}
