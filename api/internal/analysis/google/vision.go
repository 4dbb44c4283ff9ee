package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	vision "google.golang.org/api/vision/v1"

	"img-analysis/api/internal/analysis"
)

const DefaultMaxResults = 50

// DetectLabels runs LABEL_DETECTION. Vision scores are 0..1 and are scaled
// to the 0..100 confidence range.
func (e *Engine) DetectLabels(ctx context.Context, in analysis.LabelsInput) (analysis.LabelsOutput, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image: &vision.Image{Content: base64.StdEncoding.EncodeToString(in.Image)},
			Features: []*vision.Feature{{
				Type:       "LABEL_DETECTION",
				MaxResults: e.maxResults,
			}},
		}},
	}

	resp, err := e.vision.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return analysis.LabelsOutput{}, fmt.Errorf("vision annotate: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return analysis.LabelsOutput{}, errors.New("vision annotate: empty response")
	}
	r := resp.Responses[0]
	if r.Error != nil && r.Error.Code != 0 {
		return analysis.LabelsOutput{}, fmt.Errorf("vision annotate %d: %s", r.Error.Code, r.Error.Message)
	}

	// Vision omits labelAnnotations when nothing was found.
	labels := make([]analysis.Label, 0, len(r.LabelAnnotations))
	for _, a := range r.LabelAnnotations {
		if a == nil || a.Description == "" {
			continue
		}
		labels = append(labels, analysis.Label{
			Name:       a.Description,
			Confidence: a.Score * 100,
		})
	}
	return analysis.LabelsOutput{Labels: labels}, nil
}
