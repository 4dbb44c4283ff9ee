package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"img-analysis/api/internal/analysis"
	"img-analysis/api/internal/util"
)

const (
	DefaultModel   = "gpt-4o-mini"
	DefaultBaseURL = "https://api.openai.com/v1"
)

type Engine struct {
	APIKey  string
	Model   string
	baseURL string
	httpc   *http.Client
}

type Option func(*Engine)

// WithBaseURL points the engine at another OpenAI-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(e *Engine) { e.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.httpc = c }
}

func New(key, model string, opts ...Option) *Engine {
	e := &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   util.FirstNonEmpty(strings.TrimSpace(model), DefaultModel),
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Name() string { return "openai" }

func (e *Engine) GetModel() string { return e.Model }

const labelsSystem = `You are an image labeling service. List the visual concepts (objects, scenes, activities) you see in the image.
Return ONLY JSON of the form {"labels":[{"name":string,"confidence":number}]}.
"name" is a short English noun phrase in Title Case. "confidence" is your certainty from 0 to 100.
Order labels from most to least confident. No text outside JSON.`

func (e *Engine) DetectLabels(ctx context.Context, in analysis.LabelsInput) (analysis.LabelsOutput, error) {
	mime := util.PickMIME(in.Mime, "", in.Image)
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(in.Image)

	user := []any{
		map[string]any{"type": "text", "text": "Label this image."},
		map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
	}
	out, err := e.chat(ctx, labelsSystem, user, true)
	if err != nil {
		return analysis.LabelsOutput{}, fmt.Errorf("openai labels: %w", err)
	}

	var raw struct {
		Labels []analysis.Label `json:"labels"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return analysis.LabelsOutput{}, fmt.Errorf("openai labels: bad JSON: %w", err)
	}
	if raw.Labels == nil {
		return analysis.LabelsOutput{}, errors.New("openai labels: missing labels array")
	}
	return analysis.LabelsOutput{Labels: raw.Labels}, nil
}

func (e *Engine) Translate(ctx context.Context, in analysis.TranslateInput) (analysis.TranslateOutput, error) {
	system := fmt.Sprintf(`You are a translation service. Translate the user's text from %q to %q.
Keep the sentence structure and the conjunctions between items. Return ONLY the translated text.`,
		in.SourceLanguage, in.TargetLanguage)
	out, err := e.chat(ctx, system, in.Text, false)
	if err != nil {
		return analysis.TranslateOutput{}, fmt.Errorf("openai translate: %w", err)
	}
	return analysis.TranslateOutput{TranslatedText: out}, nil
}

func (e *Engine) TranslateBatch(ctx context.Context, source, target string, texts []string) ([]string, error) {
	system := fmt.Sprintf(`You are a translation service. Translate every item of the JSON array from %q to %q.
Return ONLY JSON of the form {"translations":[string]} with exactly one translation per input item, in the same order.`,
		source, target)
	payload, err := json.Marshal(texts)
	if err != nil {
		return nil, err
	}
	out, err := e.chat(ctx, system, string(payload), true)
	if err != nil {
		return nil, fmt.Errorf("openai translate batch: %w", err)
	}

	var raw struct {
		Translations []string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("openai translate batch: bad JSON: %w", err)
	}
	if raw.Translations == nil {
		return nil, errors.New("openai translate batch: missing translations array")
	}
	return raw.Translations, nil
}

// chat sends one system+user exchange to /chat/completions and returns the
// first choice with code fences removed.
func (e *Engine) chat(ctx context.Context, system string, user any, jsonOut bool) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("OPENAI_API_KEY is empty")
	}
	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": system},
			map[string]any{"role": "user", "content": user},
		},
		"temperature": 0,
	}
	if jsonOut {
		body["response_format"] = map[string]any{"type": "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", errors.New("empty response")
	}
	out := util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content))
	if out == "" {
		return "", errors.New("empty response")
	}
	return out, nil
}
