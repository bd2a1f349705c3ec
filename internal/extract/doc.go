// Package extract turns the flattened text of a DASH driver report into
// a structured domain.Report.
//
// Parsing is pure and best-effort: every field that fails to match is
// left unset and no input causes an error or panic. The pipeline is
//
//	pages -> full text -> blocks -> header, policies, claims, inquiries
//	      -> cross-policy term correlation -> Report
//
// Field patterns live in ordered matcher tables (see Chain) so each
// label variant can be tested in isolation.
package extract
