package extract

// Tracer receives extraction records keyed by component and field.
// The logger package provides an implementation for verbose runs.
type Tracer interface {
	Trace(component, field string, kv ...any)
}

// NopTracer discards every record.
type NopTracer struct{}

// Trace implements Tracer.
func (NopTracer) Trace(string, string, ...any) {}
