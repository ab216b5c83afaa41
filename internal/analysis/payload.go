// payload.go - Normalized annotation payload union

package analysis

import (
	"strings"
	"unicode/utf8"
)

// PayloadKind tags which branch of the annotation payload union is populated.
type PayloadKind string

const (
	// KindLabels marks a payload produced by label detection.
	KindLabels PayloadKind = "labels"
	// KindText marks a payload produced by text detection.
	KindText PayloadKind = "text"
)

// LabelAnnotation is one (description, confidence) pair from label detection.
// Provider order is preserved and assumed to be descending confidence.
type LabelAnnotation struct {
	Description string  `bson:"description" json:"description"`
	Score       float64 `bson:"score" json:"score"`
}

// TextBlock is one detected text block. By provider convention block 0 holds
// the full recognized text as a single multi-line string.
type TextBlock struct {
	Text string `bson:"text" json:"text"`
}

// Payload is the normalized union of the two annotation result shapes. The
// vision clients build it at the transport boundary; everything downstream
// can assume it is well formed for its Kind.
type Payload struct {
	Kind   PayloadKind       `bson:"kind" json:"kind"`
	Labels []LabelAnnotation `bson:"labels,omitempty" json:"labels,omitempty"`
	Blocks []TextBlock       `bson:"blocks,omitempty" json:"blocks,omitempty"`
}

// NewLabelPayload builds a label-detection payload.
func NewLabelPayload(labels []LabelAnnotation) Payload {
	return Payload{Kind: KindLabels, Labels: labels}
}

// NewTextPayload builds a text-detection payload.
func NewTextPayload(blocks []TextBlock) Payload {
	return Payload{Kind: KindText, Blocks: blocks}
}

// FullText returns the full recognized text (block 0), or "" when no text
// was detected.
func (p Payload) FullText() string {
	if len(p.Blocks) == 0 {
		return ""
	}
	return p.Blocks[0].Text
}

const snippetRuneLimit = 40

// Snippet returns a short preview of the payload for history listings: the
// top label description for label payloads, otherwise the leading characters
// of the recognized text.
func Snippet(p Payload) string {
	if p.Kind == KindLabels {
		if len(p.Labels) == 0 {
			return ""
		}
		return p.Labels[0].Description
	}

	text := strings.TrimSpace(p.FullText())
	if utf8.RuneCountInString(text) <= snippetRuneLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:snippetRuneLimit])
}
