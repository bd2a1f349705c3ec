package domain

// DiffEntry is one divergence between two structured values.
// A and B are nil where the path is absent on that side.
type DiffEntry struct {
	// Path addresses the value, e.g. "header.status" or "operators[0].dln".
	Path string `json:"path" yaml:"path"`
	A    any    `json:"A" yaml:"A"`
	B    any    `json:"B" yaml:"B"`
}
