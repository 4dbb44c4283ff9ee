package analysis

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type Stage string

const (
	StageFetching    Stage = "fetching"
	StageDetecting   Stage = "detecting"
	StageTranslating Stage = "translating"
	StageFormatting  Stage = "formatting"
)

// Result is everything a successful run produced.
type Result struct {
	WorkingSet WorkingSet
	Fragments  Fragments
	Text       string
}

// Pipeline runs fetch -> detect -> translate -> format, one stage at a time.
type Pipeline struct {
	fetcher      ImageFetcher
	detector     *LabelDetector
	translator   *Translator
	stageTimeout time.Duration
}

func NewPipeline(fetcher ImageFetcher, detector *LabelDetector, translator *Translator, stageTimeout time.Duration) *Pipeline {
	return &Pipeline{
		fetcher:      fetcher,
		detector:     detector,
		translator:   translator,
		stageTimeout: stageTimeout,
	}
}

func (p *Pipeline) Run(ctx context.Context, log logrus.FieldLogger, imageURL string) (Result, error) {
	var res Result

	log.WithField("stage", StageFetching).Info("downloading image")
	img, err := withStage(ctx, p.stageTimeout, func(ctx context.Context) ([]byte, error) {
		b, err := p.fetcher.Fetch(ctx, imageURL)
		if err != nil {
			return nil, NewFetchError(err)
		}
		return b, nil
	})
	if err != nil {
		return res, err
	}

	log.WithField("stage", StageDetecting).WithField("bytes", len(img)).Info("detecting labels")
	res.WorkingSet, err = withStage(ctx, p.stageTimeout, func(ctx context.Context) (WorkingSet, error) {
		return p.detector.Detect(ctx, img)
	})
	if err != nil {
		return res, err
	}

	log.WithField("stage", StageTranslating).WithField("labels", len(res.WorkingSet)).Info("translating labels")
	res.Fragments, err = withStage(ctx, p.stageTimeout, func(ctx context.Context) (Fragments, error) {
		return p.translator.Translate(ctx, res.WorkingSet)
	})
	if err != nil {
		return res, err
	}

	log.WithField("stage", StageFormatting).WithField("fragments", len(res.Fragments)).Info("formatting result")
	res.Text, err = Format(res.Fragments, res.WorkingSet)
	if err != nil {
		return res, err
	}
	return res, nil
}

// withStage runs fn under the per-stage deadline, if one is set.
func withStage[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
