// handlers.go - HTTP handlers for image upload and scan history

package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcchang/vision_scan_api/configs"
	"github.com/jcchang/vision_scan_api/internal/analysis"
	"github.com/jcchang/vision_scan_api/internal/common"
	"github.com/jcchang/vision_scan_api/internal/processor"
	"github.com/jcchang/vision_scan_api/internal/storage"
	"github.com/jcchang/vision_scan_api/internal/vision"
)

// Store is the persistence contract the handlers need: append a record,
// list records newest-first. The MongoDB store satisfies it; tests plug in
// an in-memory fake.
type Store interface {
	InsertScanRecord(record storage.ScanRecord) (storage.ScanRecord, error)
	ListScanRecords() ([]storage.ScanRecord, error)
}

// Handlers bundles the collaborators the HTTP layer delegates to.
type Handlers struct {
	Annotator vision.Annotator
	Store     Store
}

// NewHandlers wires the handlers with their collaborators.
func NewHandlers(annotator vision.Annotator, store Store) *Handlers {
	return &Handlers{Annotator: annotator, Store: store}
}

// scanResponse is one record as returned by the API, with the summary
// re-derived from the stored payload.
type scanResponse struct {
	ID        string           `json:"id"`
	Type      analysis.Mode    `json:"type"`
	ImageURL  string           `json:"imageUrl"`
	Snippet   string           `json:"snippet"`
	Summary   analysis.Summary `json:"summary"`
	Payload   analysis.Payload `json:"resultJson"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toScanResponse(record storage.ScanRecord) scanResponse {
	return scanResponse{
		ID:        record.ID.Hex(),
		Type:      record.Mode,
		ImageURL:  record.ImagePath,
		Snippet:   analysis.Snippet(record.Payload),
		Summary:   analysis.ExtractWithOptions(record.Mode, record.Payload, extractOptions()),
		Payload:   record.Payload,
		CreatedAt: record.CreatedAt,
	}
}

func extractOptions() analysis.Options {
	return analysis.Options{TotalRequiresKeyword: configs.TOTAL_REQUIRES_KEYWORD}
}

// UploadHandler handles POST /api/upload: multipart "image" file plus a
// "type" mode field. The mode is validated before anything else touches the
// request; an unknown mode is a client error, not a food-mode default.
func (h *Handlers) UploadHandler(c *gin.Context) {
	mode, err := analysis.ResolveMode(c.PostForm("type"))
	if err != nil {
		var invalidMode *analysis.InvalidModeError
		if errors.As(err, &invalidMode) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "invalid_mode",
				"message":  invalidMode.Error(),
				"expected": []string{string(analysis.ModeFood), string(analysis.ModeInvoice)},
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqCtx := common.NewRequestContext(string(mode))

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "missing_image",
			"message":    "multipart field \"image\" is required",
			"request_id": reqCtx.RequestID,
		})
		return
	}

	// Store the upload under a unique name, keeping the original extension.
	reqCtx.StartStep("save_upload")
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := uuid.New().String() + ext
	imagePath := filepath.Join(configs.UPLOAD_DIR, filename)
	if err := c.SaveUploadedFile(fileHeader, imagePath); err != nil {
		reqCtx.EndStep("failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "upload_failed",
			"message":    "failed to store uploaded image",
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil)

	// Preprocess the image for the mode's annotation kind.
	reqCtx.StartStep("preprocess_image")
	imageData, mimeType, err := prepareImage(imagePath, ext, mode)
	if err != nil {
		reqCtx.EndStep("failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "preprocess_failed",
			"message":    err.Error(),
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil)

	// Annotate via the configured provider.
	reqCtx.StartStep("annotate_image")
	payload, err := h.Annotator.Annotate(c.Request.Context(), imageData, mimeType, mode)
	if err != nil {
		reqCtx.EndStep("failed", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      "annotation_failed",
			"message":    err.Error(),
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil)

	// Persist the raw payload verbatim; summaries are derived on demand.
	reqCtx.StartStep("persist_record")
	record, err := h.Store.InsertScanRecord(storage.ScanRecord{
		Mode:      mode,
		ImagePath: imagePath,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	if err != nil {
		reqCtx.EndStep("failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "persist_failed",
			"message":    "failed to save scan record",
			"request_id": reqCtx.RequestID,
		})
		return
	}
	reqCtx.EndStep("success", nil)

	summary := reqCtx.GetSummary()
	reqCtx.LogInfo("Scan complete: provider=%s duration=%.2fs",
		h.Annotator.Name(), summary["total_duration_sec"])

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       toScanResponse(record),
		"request_id": reqCtx.RequestID,
	})
}

// ResultsHandler handles GET /api/results: the full scan history in
// descending creation order, each row with its summary recomputed from the
// stored payload. Extraction is pure, so recomputation always agrees with
// what the upload response showed.
func (h *Handlers) ResultsHandler(c *gin.Context) {
	records, err := h.Store.ListScanRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "list_failed",
			"message": "failed to load scan history",
		})
		return
	}

	results := make([]scanResponse, 0, len(records))
	for _, record := range records {
		results = append(results, toScanResponse(record))
	}

	c.JSON(http.StatusOK, results)
}

// prepareImage returns the bytes to send to the provider. With
// preprocessing disabled the stored file is passed through untouched.
func prepareImage(imagePath, ext string, mode analysis.Mode) ([]byte, string, error) {
	if configs.ENABLE_IMAGE_PREPROCESSING {
		return processor.PreprocessForMode(imagePath, mode, configs.MAX_IMAGE_DIMENSION)
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded image: %w", err)
	}
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}
