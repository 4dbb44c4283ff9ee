package analysis

// Label is a visual concept reported by the vision capability.
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // 0..100
}

// WorkingSet is the ordered subset of labels above the confidence threshold.
// Its order is zipped positionally against translated fragments.
type WorkingSet []Label

// Names returns the label names in working-set order.
func (ws WorkingSet) Names() []string {
	names := make([]string, 0, len(ws))
	for _, l := range ws {
		names = append(names, l.Name)
	}
	return names
}

// Fragments are pieces of translated text, nominally one per working-set label.
type Fragments []string

type LabelsInput struct {
	Image []byte
	Mime  string
}

type LabelsOutput struct {
	Labels []Label `json:"labels"`
}

type TranslateInput struct {
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Text           string `json:"text"`
}

type TranslateOutput struct {
	TranslatedText string `json:"translated_text"`
}
