package analysis

import (
	"context"
	"fmt"
	"strings"
)

// Labeler is the vision capability: image bytes in, candidate labels out.
type Labeler interface {
	Name() string
	DetectLabels(ctx context.Context, in LabelsInput) (LabelsOutput, error)
}

// TextTranslator is the translation capability.
type TextTranslator interface {
	Name() string
	Translate(ctx context.Context, in TranslateInput) (TranslateOutput, error)
}

// BatchTranslator is implemented by capabilities that translate a list of
// discrete strings and return the translations 1:1.
type BatchTranslator interface {
	TranslateBatch(ctx context.Context, source, target string, texts []string) ([]string, error)
}

// ImageFetcher resolves an image reference into raw bytes.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Engines holds the capability providers available to the process.
type Engines struct {
	Labelers    map[string]Labeler
	Translators map[string]TextTranslator
}

func NewEngines() *Engines {
	return &Engines{
		Labelers:    map[string]Labeler{},
		Translators: map[string]TextTranslator{},
	}
}

func (e *Engines) AddLabeler(l Labeler) { e.Labelers[l.Name()] = l }

func (e *Engines) AddTranslator(t TextTranslator) { e.Translators[t.Name()] = t }

func (e *Engines) GetLabeler(name string) (Labeler, error) {
	if l, ok := e.Labelers[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("unknown vision engine %q", name)
}

func (e *Engines) GetTranslator(name string) (TextTranslator, error) {
	if t, ok := e.Translators[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown translate engine %q", name)
}
