// annotator.go - Annotation provider interface

package vision

import (
	"context"

	"github.com/jcchang/vision_scan_api/internal/analysis"
)

// Annotator is the contract every annotation provider implements. The
// returned payload is already normalized to the analysis union and matches
// the annotation kind implied by the mode, so callers can hand it straight
// to the extraction engine.
type Annotator interface {
	// Annotate runs the mode's annotation feature over the image bytes.
	Annotate(ctx context.Context, image []byte, mimeType string, mode analysis.Mode) (analysis.Payload, error)

	// Name returns the provider name (e.g. "google", "gemini").
	Name() string

	// Close releases provider resources.
	Close() error
}
