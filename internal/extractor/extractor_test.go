package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a one-page PDF showing each line in Helvetica, one text
// matrix per line, with a valid xref table.
func buildPDF(lines []string) []byte {
	var content strings.Builder
	content.WriteString("BT\n/F1 10 Tf\n")
	for i, line := range lines {
		fmt.Fprintf(&content, "1 0 0 1 72 %d Tm\n(%s) Tj\n", 720-14*i, line)
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

var statementLines = []string{
	"Account statement period December 2024",
	"8 Dec PAYROLL CO 1,200.00 5,400.00",
	"9 Dec TIM HORTONS 4.50 5,395.50",
}

func TestPDFExtractor_TextLayer(t *testing.T) {
	text, err := NewPDFExtractor(false).Extract(context.Background(), buildPDF(statementLines))
	require.NoError(t, err)

	assert.Contains(t, text, "PAYROLL CO 1,200.00 5,400.00")
	assert.Contains(t, text, "TIM HORTONS 4.50 5,395.50")
	assert.Less(t, strings.Index(text, "PAYROLL"), strings.Index(text, "HORTONS"), "rows keep page order")
}

func TestPDFExtractor_NotAPDF(t *testing.T) {
	_, err := NewPDFExtractor(false).Extract(context.Background(), []byte("Date,Description,Amount\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestPDFExtractor_ShortTextIsReturned(t *testing.T) {
	text, err := NewPDFExtractor(false).Extract(context.Background(), buildPDF([]string{"hello"}))
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(text))
}

func TestPDFExtractor_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFExtractor(true).Extract(ctx, buildPDF(statementLines))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadable(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"statement text", strings.Join(statementLines, "\n"), true},
		{"too short", "Balance 5.00", false},
		{"no statement words", strings.Repeat("lorem ipsum dolor ", 5), false},
		{"decoding garbage", strings.Repeat("ÃÂÄÅÆÇÈÉ", 10) + " balance", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Readable(tt.text))
		})
	}
}

func TestOCRAvailable(t *testing.T) {
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	assert.Equal(t, err1 == nil && err2 == nil, OCRAvailable())
}

func TestExtractWithOCR_MissingTools(t *testing.T) {
	if OCRAvailable() {
		t.Skip("OCR tools are installed; cannot test missing-tool error path")
	}

	_, err := extractWithOCR(context.Background(), buildPDF(statementLines))
	assert.Error(t, err)
}
