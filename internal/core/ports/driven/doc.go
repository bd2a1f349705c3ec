// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ReportStore: Parsed report persistence (memory or SQLite)
//   - PageSource: Page text extraction from PDF or text files
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - ReportExporter: Spreadsheet rendering. Without it, export is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
