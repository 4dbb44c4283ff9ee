package analysis

import (
	"context"
	"errors"
	"fmt"

	"img-analysis/api/internal/util"
)

// LabelDetector calls the vision capability and filters its output.
type LabelDetector struct {
	labeler       Labeler
	minConfidence float64
}

func NewLabelDetector(labeler Labeler, minConfidence float64) *LabelDetector {
	return &LabelDetector{labeler: labeler, minConfidence: minConfidence}
}

func (d *LabelDetector) Detect(ctx context.Context, img []byte) (WorkingSet, error) {
	if len(img) == 0 {
		return nil, NewDetectionError(errors.New("empty image"))
	}
	out, err := d.labeler.DetectLabels(ctx, LabelsInput{
		Image: img,
		Mime:  util.SniffMimeHTTP(img),
	})
	if err != nil {
		return nil, NewDetectionError(fmt.Errorf("%s: %w", d.labeler.Name(), err))
	}
	if out.Labels == nil {
		return nil, NewDetectionError(fmt.Errorf("%s: response has no label array", d.labeler.Name()))
	}
	return ApplyConfidencePolicy(out.Labels, d.minConfidence), nil
}
