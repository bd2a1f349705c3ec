// Package pdf extracts page text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PageSource = (*Normaliser)(nil)

// Normaliser reads the text layer of a PDF, one string per page.
// Scanned pages without a text layer come back empty.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Pages extracts the plain text of every page in document order.
func (n *Normaliser) Pages(ctx context.Context, name string, data []byte) (pages []string, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrInvalidInput)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%s: malformed pdf: %v: %w", name, r, domain.ErrInvalidInput)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: open pdf: %v: %w", name, err, domain.ErrInvalidInput)
	}

	count := reader.NumPage()
	pages = make([]string, 0, count)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%s: page %d: %w", name, i, err)
		}
		pages = append(pages, cleanText(text))
	}

	return pages, nil
}

// cleanText normalises line endings and Unicode composition.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
