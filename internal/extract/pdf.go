// Package extract pulls plain text out of staged upload files.
package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/claro-labs/claro/internal/domain"
)

// PDFText extracts the plain text of the PDF at path.
// A file that parses but yields no extractable text fails with
// ErrValidation: the caller tells the user to try another file.
func PDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %v: %w", err, domain.ErrValidation)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %v: %w", err, domain.ErrValidation)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}

	text := strings.TrimSpace(b.String())
	if len(text) < 5 {
		return "", fmt.Errorf("no extractable text: %w", domain.ErrValidation)
	}
	return text, nil
}
