package driven

import "context"

// PageSource extracts ordered page texts from a document.
// Pages may be empty strings; their order is the document order.
type PageSource interface {
	// Pages extracts the text of each page of data.
	// name is used to select a format and in error messages.
	Pages(ctx context.Context, name string, data []byte) ([]string, error)

	// Extensions lists the lower-case file extensions this source reads,
	// including the leading dot.
	Extensions() []string
}
