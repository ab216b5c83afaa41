// imageprocessor.go - Image preprocessing before annotation

package processor

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jcchang/vision_scan_api/internal/analysis"
)

const jpegQuality = 90

// PreprocessForMode prepares an uploaded image for annotation. Both modes
// get bounded to maxDimension on the longest side (API payload limits).
// Invoice mode additionally gets an OCR-oriented enhancement pass; food mode
// keeps the original colors, since label detection depends on them.
// Returns the processed bytes and their mime type.
func PreprocessForMode(imagePath string, mode analysis.Mode, maxDimension int) ([]byte, string, error) {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}

	if maxDimension <= 0 {
		maxDimension = 2000
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxDimension || height > maxDimension {
		if width > height {
			img = imaging.Resize(img, maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxDimension, imaging.Lanczos)
		}
	}

	if mode == analysis.ModeInvoice {
		// Receipt text reads better sharpened, desaturated and with the
		// contrast pushed up.
		img = imaging.Sharpen(img, 2.5)
		img = imaging.AdjustContrast(img, 40)
		img = imaging.AdjustBrightness(img, 15)
		img = imaging.Grayscale(img)
		img = imaging.AdjustContrast(img, 30)
		img = imaging.AdjustGamma(img, 1.1)
	}

	// Encode the processed image
	var buf bytes.Buffer
	ext := strings.ToLower(filepath.Ext(imagePath))
	mimeType := "image/jpeg"

	switch ext {
	case ".png":
		err = png.Encode(&buf, img)
		mimeType = "image/png"
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode processed image: %w", err)
	}

	return buf.Bytes(), mimeType, nil
}
