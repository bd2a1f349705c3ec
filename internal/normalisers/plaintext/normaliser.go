// Package plaintext reads pre-extracted report text.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PageSource = (*Normaliser)(nil)

// PageBreak separates pages in text input, as written by pdftotext.
const PageBreak = "\f"

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

// Pages splits the text on form feeds. Input without form feeds is a
// single page. A trailing form feed does not start an extra page.
func (n *Normaliser) Pages(_ context.Context, name string, data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: not valid UTF-8: %w", name, domain.ErrInvalidInput)
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = norm.NFC.String(text)
	text = strings.TrimSuffix(text, PageBreak)

	return strings.Split(text, PageBreak), nil
}
