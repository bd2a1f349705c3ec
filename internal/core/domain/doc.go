// Package domain defines the core entities for dashreport.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Report: A parsed DASH driver report
//   - Header: Driver-level fields from the report cover section
//   - Policy: One insurance policy with its operators and vehicles
//   - Claim: One loss event with monetary totals and parties
//   - DiffEntry: A single divergence between two structured values
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
