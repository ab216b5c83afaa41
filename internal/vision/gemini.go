// gemini.go - Gemini-backed annotation provider

package vision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/jcchang/vision_scan_api/internal/analysis"
	"github.com/jcchang/vision_scan_api/internal/ratelimit"
	"google.golang.org/api/option"
)

const geminiTimeout = 45 * time.Second

// labelPrompt asks for the same shape Cloud Vision label detection returns,
// so both providers normalize into an identical payload.
const labelPrompt = `Identify the food or grocery items visible in this image.
Respond with ONLY a JSON array, ordered from most to least confident, where
each element is {"description": "<label>", "score": <confidence 0.0-1.0>}.
Return [] if nothing is recognizable. No prose, no markdown.`

// textPrompt asks for a plain transcription equivalent to Cloud Vision text
// detection block 0.
const textPrompt = `Transcribe ALL text visible in this image exactly as
printed, one physical line per output line, preserving the original line
order. Output the raw text only - no commentary, no markdown.`

// GeminiAnnotator implements Annotator using the Gemini multimodal API.
type GeminiAnnotator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiAnnotator creates a Gemini-backed annotator.
func NewGeminiAnnotator(apiKey string, modelName string) (*GeminiAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiAnnotator{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Annotate prompts the model for the mode's annotation kind and normalizes
// the reply into the payload union.
func (g *GeminiAnnotator) Annotate(ctx context.Context, image []byte, mimeType string, mode analysis.Mode) (analysis.Payload, error) {
	ratelimit.Wait()

	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	prompt := labelPrompt
	if mode == analysis.ModeInvoice {
		prompt = textPrompt
	}

	parts := []genai.Part{
		genai.ImageData(imageFormat(mimeType), image),
		genai.Text(prompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return analysis.Payload{}, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return analysis.Payload{}, fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(sb.String())

	if mode == analysis.ModeInvoice {
		if text == "" {
			return analysis.NewTextPayload(nil), nil
		}
		return analysis.NewTextPayload([]analysis.TextBlock{{Text: text}}), nil
	}

	labels, err := parseLabelJSON(text)
	if err != nil {
		return analysis.Payload{}, fmt.Errorf("parsing label response: %w", err)
	}
	return analysis.NewLabelPayload(labels), nil
}

// Name returns the provider name.
func (g *GeminiAnnotator) Name() string {
	return "gemini"
}

// Close closes the Gemini client.
func (g *GeminiAnnotator) Close() error {
	return g.client.Close()
}

// imageFormat converts a MIME type into the bare format suffix genai
// expects ("image/png" -> "png").
func imageFormat(mimeType string) string {
	if format, ok := strings.CutPrefix(mimeType, "image/"); ok && format != "" {
		return format
	}
	return "jpeg"
}
