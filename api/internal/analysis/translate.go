package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type TranslateMode string

const (
	// ModeJoined sends all names as one sentence and splits the answer on
	// the target-language conjunction.
	ModeJoined TranslateMode = "joined"
	// ModeDiscrete translates every name on its own; output is 1:1.
	ModeDiscrete TranslateMode = "discrete"
)

const (
	DefaultJoinSeparator  = " and "
	DefaultSplitSeparator = " e "
)

type TranslatorOptions struct {
	SourceLanguage string
	TargetLanguage string
	Mode           TranslateMode
	JoinSeparator  string
	SplitSeparator string
}

// Translator turns working-set names into target-language fragments.
type Translator struct {
	tr   TextTranslator
	opts TranslatorOptions
}

func NewTranslator(tr TextTranslator, opts TranslatorOptions) *Translator {
	if opts.Mode == "" {
		opts.Mode = ModeJoined
	}
	if opts.JoinSeparator == "" {
		opts.JoinSeparator = DefaultJoinSeparator
	}
	if opts.SplitSeparator == "" {
		opts.SplitSeparator = DefaultSplitSeparator
	}
	return &Translator{tr: tr, opts: opts}
}

// NameQuery joins the working-set names with the join separator.
func (t *Translator) NameQuery(ws WorkingSet) string {
	return strings.Join(ws.Names(), t.opts.JoinSeparator)
}

func (t *Translator) Translate(ctx context.Context, ws WorkingSet) (Fragments, error) {
	if len(ws) == 0 {
		return Fragments{}, nil
	}
	switch t.opts.Mode {
	case ModeJoined:
		return t.translateJoined(ctx, ws)
	case ModeDiscrete:
		return t.translateDiscrete(ctx, ws)
	default:
		return nil, NewTranslationError(fmt.Errorf("unknown translate mode %q", t.opts.Mode))
	}
}

// translateJoined does not check the fragment count against the working
// set; Format decides what a mismatch means.
func (t *Translator) translateJoined(ctx context.Context, ws WorkingSet) (Fragments, error) {
	text, err := t.translateOne(ctx, t.NameQuery(ws))
	if err != nil {
		return nil, err
	}
	return Fragments(strings.Split(text, t.opts.SplitSeparator)), nil
}

func (t *Translator) translateDiscrete(ctx context.Context, ws WorkingSet) (Fragments, error) {
	names := ws.Names()

	var out []string
	if bt, ok := t.tr.(BatchTranslator); ok {
		res, err := bt.TranslateBatch(ctx, t.opts.SourceLanguage, t.opts.TargetLanguage, names)
		if err != nil {
			return nil, NewTranslationError(fmt.Errorf("%s: %w", t.tr.Name(), err))
		}
		out = res
	} else {
		out = make([]string, 0, len(names))
		for _, n := range names {
			text, err := t.translateOne(ctx, n)
			if err != nil {
				return nil, err
			}
			out = append(out, text)
		}
	}

	if len(out) != len(ws) {
		return nil, NewTranslationError(fmt.Errorf("%s: got %d translations for %d labels", t.tr.Name(), len(out), len(ws)))
	}
	for i, s := range out {
		if strings.TrimSpace(s) == "" {
			return nil, NewTranslationError(fmt.Errorf("%s: empty translation for %q", t.tr.Name(), names[i]))
		}
	}
	return Fragments(out), nil
}

func (t *Translator) translateOne(ctx context.Context, text string) (string, error) {
	res, err := t.tr.Translate(ctx, TranslateInput{
		SourceLanguage: t.opts.SourceLanguage,
		TargetLanguage: t.opts.TargetLanguage,
		Text:           text,
	})
	if err != nil {
		return "", NewTranslationError(fmt.Errorf("%s: %w", t.tr.Name(), err))
	}
	if res.TranslatedText == "" {
		return "", NewTranslationError(errors.New(t.tr.Name() + ": no translated text"))
	}
	return res.TranslatedText, nil
}
