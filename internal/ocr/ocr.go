// Package ocr turns source PDFs into plain text for the pre-bill pipeline.
package ocr

import (
	"context"

	"github.com/rotisserie/eris"
)

// Extractor produces the full text content of a PDF.
type Extractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// New selects an extractor by provider name. "local" (the default) shells
// out to pdftotext.
func New(provider, pdfToTextPath string) (Extractor, error) {
	switch provider {
	case "", "local":
		return NewPdfToText(pdfToTextPath), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", provider)
	}
}
