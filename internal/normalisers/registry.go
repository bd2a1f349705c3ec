package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/dashreport/internal/core/domain"
	"github.com/custodia-labs/dashreport/internal/core/ports/driven"
	"github.com/custodia-labs/dashreport/internal/normalisers/pdf"
	"github.com/custodia-labs/dashreport/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.PageSource = (*Registry)(nil)

// Registry dispatches to a page source by file extension.
type Registry struct {
	byExt map[string]driven.PageSource
}

// NewRegistry creates a registry over sources. Later sources win on
// extension clashes.
func NewRegistry(sources ...driven.PageSource) *Registry {
	r := &Registry{byExt: make(map[string]driven.PageSource)}
	for _, src := range sources {
		r.Register(src)
	}
	return r
}

// Default returns a registry with the PDF and plain text sources.
func Default() *Registry {
	return NewRegistry(pdf.New(), plaintext.New())
}

// Register adds a page source for each of its extensions.
func (r *Registry) Register(src driven.PageSource) {
	for _, ext := range src.Extensions() {
		r.byExt[strings.ToLower(ext)] = src
	}
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether name has a registered extension.
func (r *Registry) Supports(name string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Pages extracts pages using the source registered for name's extension.
func (r *Registry) Pages(ctx context.Context, name string, data []byte) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	src, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedType)
	}
	return src.Pages(ctx, name, data)
}
