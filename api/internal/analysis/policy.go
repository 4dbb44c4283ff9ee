package analysis

// DefaultMinConfidence is the label threshold on the 0..100 scale.
const DefaultMinConfidence = 80.0

// ApplyConfidencePolicy keeps labels whose confidence is strictly greater
// than minConfidence, in the order the detector returned them.
func ApplyConfidencePolicy(labels []Label, minConfidence float64) WorkingSet {
	ws := make(WorkingSet, 0, len(labels))
	for _, l := range labels {
		if l.Confidence > minConfidence {
			ws = append(ws, l)
		}
	}
	return ws
}
