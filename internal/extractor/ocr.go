package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-lens/internal/logger"
)

// OCRAvailable reports whether pdftoppm and tesseract are on PATH.
func OCRAvailable() bool {
	_, errRaster := exec.LookPath("pdftoppm")
	_, errOCR := exec.LookPath("tesseract")
	return errRaster == nil && errOCR == nil
}

// extractWithOCR rasterizes each page with pdftoppm and reads it back with
// tesseract. This is the only path for scanned statements without a text
// layer.
func extractWithOCR(ctx context.Context, document []byte) (string, error) {
	if !OCRAvailable() {
		return "", fmt.Errorf("ocr tools not available (install poppler-utils and tesseract-ocr)")
	}

	tmpDir, err := os.MkdirTemp("", "statement-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "statement.pdf")
	if err := os.WriteFile(pdfPath, document, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	// 300 DPI keeps small statement print legible to tesseract.
	prefix := filepath.Join(tmpDir, "page")
	if out, err := exec.CommandContext(ctx, "pdftoppm", "-r", "300", "-png", pdfPath, prefix).CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", err
	}
	sort.Strings(images)
	if len(images) == 0 {
		return "", fmt.Errorf("pdftoppm produced no page images")
	}

	log := logger.FromContext(ctx)
	var pages []string
	for _, img := range images {
		// PSM 4: a single column of text of variable sizes.
		out, err := exec.CommandContext(ctx, "tesseract", img, "stdout", "-l", "eng", "--psm", "4").Output()
		if err != nil {
			log.Warn().Err(err).Str("page", filepath.Base(img)).Msg("tesseract failed on page")
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("tesseract produced no text from %d page images", len(images))
	}
	return joinPages(pages), nil
}
