package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"img-analysis/api/internal/analysis"
	"img-analysis/api/internal/util"
)

const DefaultModel = "gemini-2.5-flash"

type Engine struct {
	APIKey string
	Model  string
	opts   []option.ClientOption
	// generate sends a request to the model; replaced in tests.
	generate func(ctx context.Context, req request) (string, error)
}

func New(apiKey, model string, opts ...option.ClientOption) *Engine {
	e := &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  util.FirstNonEmpty(strings.TrimSpace(model), DefaultModel),
		opts:   opts,
	}
	e.generate = e.generateContent
	return e
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// request is one GenerateContent call: system instruction, output mode and
// the user parts.
type request struct {
	system  string
	jsonOut bool
	parts   []genai.Part
}

// configure applies the request's generation settings to m.
func (r request) configure(m *genai.GenerativeModel) {
	m.GenerationConfig = genai.GenerationConfig{Temperature: ptrFloat32(0)}
	if r.jsonOut {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(r.system)}}
}

const labelsInstruction = `You are an image labeling service. List the visual concepts (objects, scenes, activities) you see in the image.
Return ONLY JSON of the form {"labels":[{"name":string,"confidence":number}]}.
"name" is a short English noun phrase in Title Case. "confidence" is your certainty from 0 to 100.
Order labels from most to least confident. No text outside JSON.`

func labelsRequest(in analysis.LabelsInput) request {
	return request{
		system:  labelsInstruction,
		jsonOut: true,
		parts: []genai.Part{
			genai.Text("Label this image."),
			genai.Blob{MIMEType: util.PickMIME(in.Mime, "", in.Image), Data: in.Image},
		},
	}
}

func translateRequest(in analysis.TranslateInput) request {
	return request{
		system: fmt.Sprintf(`You are a translation service. Translate the user's text from %q to %q.
Keep the sentence structure and the conjunctions between items. Return ONLY the translated text.`,
			in.SourceLanguage, in.TargetLanguage),
		parts: []genai.Part{genai.Text(in.Text)},
	}
}

func batchRequest(source, target string, texts []string) (request, error) {
	payload, err := json.Marshal(texts)
	if err != nil {
		return request{}, err
	}
	return request{
		system: fmt.Sprintf(`You are a translation service. Translate every item of the JSON array from %q to %q.
Return ONLY JSON of the form {"translations":[string]} with exactly one translation per input item, in the same order.`,
			source, target),
		jsonOut: true,
		parts:   []genai.Part{genai.Text(string(payload))},
	}, nil
}

// DetectLabels asks the model for labels with confidences on the 0..100 scale.
func (e *Engine) DetectLabels(ctx context.Context, in analysis.LabelsInput) (analysis.LabelsOutput, error) {
	txt, err := e.generate(ctx, labelsRequest(in))
	if err != nil {
		return analysis.LabelsOutput{}, fmt.Errorf("gemini labels: %w", err)
	}
	return parseLabels(txt)
}

func (e *Engine) Translate(ctx context.Context, in analysis.TranslateInput) (analysis.TranslateOutput, error) {
	txt, err := e.generate(ctx, translateRequest(in))
	if err != nil {
		return analysis.TranslateOutput{}, fmt.Errorf("gemini translate: %w", err)
	}
	return analysis.TranslateOutput{TranslatedText: strings.TrimSpace(txt)}, nil
}

// TranslateBatch translates each item separately inside one request and
// expects the same number of items back.
func (e *Engine) TranslateBatch(ctx context.Context, source, target string, texts []string) ([]string, error) {
	req, err := batchRequest(source, target, texts)
	if err != nil {
		return nil, err
	}
	txt, err := e.generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gemini translate batch: %w", err)
	}
	return parseTranslations(txt)
}

func (e *Engine) generateContent(ctx context.Context, req request) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	opts := append([]option.ClientOption{option.WithAPIKey(e.APIKey)}, e.opts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", errors.New("model is nil")
	}
	req.configure(m)

	resp, err := m.GenerateContent(ctx, req.parts...)
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", errors.New("empty response")
	}
	return txt, nil
}

func parseLabels(txt string) (analysis.LabelsOutput, error) {
	var raw struct {
		Labels []analysis.Label `json:"labels"`
	}
	if err := json.Unmarshal([]byte(util.StripCodeFences(txt)), &raw); err != nil {
		return analysis.LabelsOutput{}, fmt.Errorf("gemini labels: bad JSON: %w", err)
	}
	if raw.Labels == nil {
		return analysis.LabelsOutput{}, errors.New("gemini labels: missing labels array")
	}
	return analysis.LabelsOutput{Labels: raw.Labels}, nil
}

func parseTranslations(txt string) ([]string, error) {
	var raw struct {
		Translations []string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(util.StripCodeFences(txt)), &raw); err != nil {
		return nil, fmt.Errorf("gemini translate batch: bad JSON: %w", err)
	}
	if raw.Translations == nil {
		return nil, errors.New("gemini translate batch: missing translations array")
	}
	return raw.Translations, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
