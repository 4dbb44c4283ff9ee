package google

import (
	"context"
	"errors"
	"fmt"

	"img-analysis/api/internal/analysis"
)

func (e *Engine) Translate(ctx context.Context, in analysis.TranslateInput) (analysis.TranslateOutput, error) {
	out, err := e.TranslateBatch(ctx, in.SourceLanguage, in.TargetLanguage, []string{in.Text})
	if err != nil {
		return analysis.TranslateOutput{}, err
	}
	return analysis.TranslateOutput{TranslatedText: out[0]}, nil
}

// TranslateBatch sends all texts in one call; the API answers 1:1 in order.
func (e *Engine) TranslateBatch(ctx context.Context, source, target string, texts []string) ([]string, error) {
	if target == "" {
		return nil, errors.New("translate: target language is empty")
	}
	call := e.translate.Translations.List(texts, target).Format("text").Context(ctx)
	if source != "" {
		call = call.Source(source)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	if resp == nil || len(resp.Translations) == 0 {
		return nil, errors.New("translate: empty response")
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("translate: got %d translations for %d texts", len(resp.Translations), len(texts))
	}
	out := make([]string, 0, len(resp.Translations))
	for _, t := range resp.Translations {
		if t == nil {
			out = append(out, "")
			continue
		}
		out = append(out, t.TranslatedText)
	}
	return out, nil
}
