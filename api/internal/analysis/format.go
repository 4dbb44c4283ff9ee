package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	SummaryPrefix = "A imagem tem: "
	lineFormat    = "%s%% de ser do tipo %s"
)

// Format zips fragments with the confidences of the working set.
// It walks the fragments: a fragment without a matching label is a
// FormatError, labels without a fragment are dropped.
func Format(fragments Fragments, ws WorkingSet) (string, error) {
	lines := make([]string, 0, len(fragments))
	for i, frag := range fragments {
		if i >= len(ws) {
			return "", NewFormatError(fmt.Errorf("fragment %d (%q) has no label: index out of range [%d] with length %d", i, frag, i, len(ws)))
		}
		lines = append(lines, FormatLine(ws[i].Confidence, frag))
	}
	return strings.Join(lines, "\n"), nil
}

func FormatLine(confidence float64, name string) string {
	return fmt.Sprintf(lineFormat, fixed2(confidence), name)
}

// fixed2 renders v with two decimals. A value exactly halfway between two
// hundredths (only k/8 with k odd is representable) rounds to the larger
// neighbour; everything else rounds to nearest.
func fixed2(v float64) string {
	if e := v * 8; !math.IsInf(v, 0) && e == math.Trunc(e) && math.Mod(e, 2) != 0 {
		return strconv.FormatFloat(v+0.005, 'f', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
