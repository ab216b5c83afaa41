// google.go - Google Cloud Vision annotation provider

package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/jcchang/vision_scan_api/internal/analysis"
	"github.com/jcchang/vision_scan_api/internal/ratelimit"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"
)

// GoogleAnnotator implements Annotator using the Cloud Vision images:annotate
// endpoint.
type GoogleAnnotator struct {
	service    *visionapi.Service
	maxResults int64
}

// NewGoogleAnnotator creates a Cloud Vision client authenticated by API key.
func NewGoogleAnnotator(apiKey string, labelMaxResults int) (*GoogleAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google vision api key is required")
	}
	if labelMaxResults <= 0 {
		labelMaxResults = 10
	}

	svc, err := visionapi.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating vision service: %w", err)
	}

	return &GoogleAnnotator{
		service:    svc,
		maxResults: int64(labelMaxResults),
	}, nil
}

// Annotate submits a single-image batch request with the feature type the
// mode requires and normalizes the response into the payload union.
func (g *GoogleAnnotator) Annotate(ctx context.Context, image []byte, mimeType string, mode analysis.Mode) (analysis.Payload, error) {
	ratelimit.Wait()

	feature := &visionapi.Feature{Type: mode.Feature()}
	if mode == analysis.ModeFood {
		feature.MaxResults = g.maxResults
	}

	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{{
			Image:    &visionapi.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*visionapi.Feature{feature},
		}},
	}

	resp, err := g.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return analysis.Payload{}, fmt.Errorf("calling vision api: %w", err)
	}
	if len(resp.Responses) == 0 {
		return analysis.Payload{}, fmt.Errorf("empty vision api response")
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return analysis.Payload{}, fmt.Errorf("vision api error: %s", r.Error.Message)
	}

	if mode == analysis.ModeInvoice {
		blocks := make([]analysis.TextBlock, 0, len(r.TextAnnotations))
		for _, t := range r.TextAnnotations {
			blocks = append(blocks, analysis.TextBlock{Text: t.Description})
		}
		return analysis.NewTextPayload(blocks), nil
	}

	labels := make([]analysis.LabelAnnotation, 0, len(r.LabelAnnotations))
	for _, l := range r.LabelAnnotations {
		labels = append(labels, analysis.LabelAnnotation{
			Description: l.Description,
			Score:       l.Score,
		})
	}
	return analysis.NewLabelPayload(labels), nil
}

// Name returns the provider name.
func (g *GoogleAnnotator) Name() string {
	return "google"
}

// Close is a no-op; the REST client holds no long-lived resources.
func (g *GoogleAnnotator) Close() error {
	return nil
}
