package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/clm6/transformer-diagnostic-ai/internal/config"
)

// Extractor extracts plain text content from PDF files.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return NewPdfToText(cfg.PdfToTextPath, cfg.MaxTextLen), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
