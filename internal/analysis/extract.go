// extract.go - Field extraction engine

package analysis

import (
	"math"
	"strings"
)

// foodTopN caps how many ranked labels a food summary carries.
const foodTopN = 5

// RankedLabel is one entry of a food summary. Confidence is the provider
// score scaled to percent and rounded to one decimal.
type RankedLabel struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// FoodSummary ranks the detected labels in provider order.
type FoodSummary struct {
	Labels []RankedLabel `json:"labels"`
}

// InvoiceSummary holds the fields recovered from receipt OCR text. Date and
// Total are the raw matched lines, empty when nothing matched. Items keeps
// the original line order, without deduplication.
type InvoiceSummary struct {
	Date  string   `json:"date,omitempty"`
	Total string   `json:"total,omitempty"`
	Items []string `json:"items"`
}

// Summary is the mode-dependent extraction result. Exactly one of Food and
// Invoice is set, matching Mode.
type Summary struct {
	Mode    Mode            `json:"mode"`
	Food    *FoodSummary    `json:"food,omitempty"`
	Invoice *InvoiceSummary `json:"invoice,omitempty"`
}

// Options tunes the invoice heuristics. The zero value reproduces the
// default behavior.
type Options struct {
	// TotalRequiresKeyword restricts the total scan to lines that also carry
	// a total keyword. Off by default: the loose first-monetary-line rule can
	// pick the wrong line when several monetary lines precede the real total,
	// but that is the documented trade-off, not something to fix silently.
	TotalRequiresKeyword bool
}

// Extract derives a structured summary from a normalized annotation payload
// using default options. It is a pure function: same (mode, payload) in,
// same summary out, with no I/O and no shared state. Malformed or empty
// payloads degrade to empty summaries, never errors - payload quality is the
// provider's uncertainty, not a caller bug.
func Extract(mode Mode, payload Payload) Summary {
	return ExtractWithOptions(mode, payload, Options{})
}

// ExtractWithOptions is Extract with explicit heuristic options.
func ExtractWithOptions(mode Mode, payload Payload, opts Options) Summary {
	if mode == ModeInvoice {
		return Summary{Mode: mode, Invoice: extractInvoice(payload, opts)}
	}
	return Summary{Mode: mode, Food: extractFood(payload)}
}

// extractFood keeps the first foodTopN labels in provider order. No
// re-sorting: the provider already ranks by confidence.
func extractFood(payload Payload) *FoodSummary {
	n := len(payload.Labels)
	if n > foodTopN {
		n = foodTopN
	}

	labels := make([]RankedLabel, 0, n)
	for _, l := range payload.Labels[:n] {
		labels = append(labels, RankedLabel{
			Description: l.Description,
			Confidence:  roundPercent(l.Score),
		})
	}
	return &FoodSummary{Labels: labels}
}

// extractInvoice runs the three independent line scans over the full OCR
// text. The scans are not partitions: a line excluded from items may still
// be the date or total match.
func extractInvoice(payload Payload, opts Options) *InvoiceSummary {
	summary := &InvoiceSummary{Items: []string{}}

	lines := splitLines(payload.FullText())
	if len(lines) == 0 {
		return summary
	}

	for _, line := range lines {
		if summary.Date == "" && MatchesDateLine(line) {
			summary.Date = line
		}
		if summary.Total == "" && MatchesTotalLine(line, opts.TotalRequiresKeyword) {
			summary.Total = line
		}
		if IsItemLine(line) {
			summary.Items = append(summary.Items, line)
		}
	}

	return summary
}

// splitLines breaks the OCR text on newlines and drops lines that are empty
// after trimming, preserving relative order.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// roundPercent converts a [0,1] score to a percentage rounded to one
// decimal place.
func roundPercent(score float64) float64 {
	return math.Round(score*1000) / 10
}
