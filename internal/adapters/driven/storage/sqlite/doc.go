// Package sqlite provides a SQLite-backed implementation of driven.ReportStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// Each report row keeps its list columns (driver, report date, policy count)
// next to the JSON-encoded summary, and the full text in its own column so
// listings never read it.
//
// # Data Location
//
// By default, the database is stored at ~/.dashreport/data/reports.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
