package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// DefaultMaxTextLen bounds extracted text so the downstream prompt stays
// within the analysis model's context window.
const DefaultMaxTextLen = 15000

// PdfToText extracts text from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath    string
	maxTextLen int
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext"
// is used; if maxTextLen is zero, DefaultMaxTextLen applies.
func NewPdfToText(binPath string, maxTextLen int) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	if maxTextLen <= 0 {
		maxTextLen = DefaultMaxTextLen
	}
	return &PdfToText{binPath: binPath, maxTextLen: maxTextLen}
}

// ExtractText runs pdftotext -layout on the given PDF and returns stdout,
// truncated to the configured length cap.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	return truncate(stdout.String(), p.maxTextLen), nil
}

// truncate caps text at max bytes, backing off to a rune boundary so a
// multi-byte character is never split.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
