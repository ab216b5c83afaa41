// factory.go - Annotator factory for creating provider instances

package vision

import (
	"fmt"
	"log"

	"github.com/jcchang/vision_scan_api/configs"
)

// NewAnnotator creates an annotation provider based on configuration.
func NewAnnotator() (Annotator, error) {
	switch configs.VISION_PROVIDER {
	case "google":
		log.Printf("Creating Google Vision annotator")
		return NewGoogleAnnotator(configs.GOOGLE_VISION_API_KEY, configs.LABEL_MAX_RESULTS)

	case "gemini":
		log.Printf("Creating Gemini annotator (model: %s)", configs.GEMINI_MODEL_NAME)
		return NewGeminiAnnotator(configs.GEMINI_API_KEY, configs.GEMINI_MODEL_NAME)

	default:
		return nil, fmt.Errorf("unsupported vision provider: %s (supported: google, gemini)", configs.VISION_PROVIDER)
	}
}
