// parse.go - Parsing of model label responses

package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jcchang/vision_scan_api/internal/analysis"
)

// parseLabelJSON parses the JSON label array from a model reply. The model
// is told not to use markdown, but fenced code blocks still show up, so they
// are stripped before the array is located.
func parseLabelJSON(text string) ([]analysis.LabelAnnotation, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Locate the array boundaries - models occasionally wrap the JSON in a
	// sentence despite the prompt.
	startIdx := strings.Index(text, "[")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	endIdx := strings.LastIndex(text, "]")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON array in response")
	}
	text = text[startIdx : endIdx+1]

	var labels []analysis.LabelAnnotation
	if err := json.Unmarshal([]byte(text), &labels); err != nil {
		return nil, fmt.Errorf("unmarshaling labels: %w", err)
	}

	// Drop entries without a description and clamp scores into [0,1].
	cleaned := make([]analysis.LabelAnnotation, 0, len(labels))
	for _, l := range labels {
		l.Description = strings.TrimSpace(l.Description)
		if l.Description == "" {
			continue
		}
		if l.Score < 0 {
			l.Score = 0
		}
		if l.Score > 1 {
			l.Score = 1
		}
		cleaned = append(cleaned, l)
	}
	return cleaned, nil
}
