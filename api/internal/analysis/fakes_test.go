package analysis

import (
	"context"
	"errors"
	"strings"
)

type fakeFetcher struct {
	img []byte
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	return f.img, f.err
}

type fakeLabeler struct {
	out   LabelsOutput
	err   error
	calls int
}

func (f *fakeLabeler) Name() string { return "fake" }

func (f *fakeLabeler) DetectLabels(_ context.Context, _ LabelsInput) (LabelsOutput, error) {
	f.calls++
	return f.out, f.err
}

type fakeTranslator struct {
	reply  func(in TranslateInput) (string, error)
	inputs []TranslateInput
}

func (f *fakeTranslator) Name() string { return "fake" }

func (f *fakeTranslator) Translate(_ context.Context, in TranslateInput) (TranslateOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.reply == nil {
		return TranslateOutput{}, errors.New("no reply configured")
	}
	s, err := f.reply(in)
	return TranslateOutput{TranslatedText: s}, err
}

func constReply(s string) func(TranslateInput) (string, error) {
	return func(TranslateInput) (string, error) { return s, nil }
}

// dictionaryReply translates word by word and keeps " and " as " e ".
func dictionaryReply(dict map[string]string) func(TranslateInput) (string, error) {
	return func(in TranslateInput) (string, error) {
		parts := strings.Split(in.Text, " and ")
		for i, p := range parts {
			if t, ok := dict[p]; ok {
				parts[i] = t
			}
		}
		return strings.Join(parts, " e "), nil
	}
}

type fakeBatchTranslator struct {
	fakeTranslator
	batch      func(texts []string) ([]string, error)
	batchCalls int
}

func (f *fakeBatchTranslator) TranslateBatch(_ context.Context, _, _ string, texts []string) ([]string, error) {
	f.batchCalls++
	return f.batch(texts)
}
