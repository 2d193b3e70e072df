// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Note, Warning, Error or Fatal (severity.go).
//   - Code – compact numeric identifier with a stable string form. Lexical
//     codes live in the 1000s, syntax in the 2000s, semantic in the 3000s and
//     environment failures in the 4000s.
//   - Message – short, actionable text.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans, e.g. "previous declaration here".
//   - Suggestions – optional hints, possibly with a replacement text.
//
// A Diagnostic is never mutated after it has been reported.
//
// # Emitting diagnostics
//
// Phases receive a Reporter and never touch storage directly. Simple
// reports call Reporter.Report; richer ones go through ReportBuilder
// (ReportError/ReportWarning/ReportNote/ReportFatal, WithNote, Emit).
//
// Engine is the per-unit sink used by the driver: it keeps the ordered
// list plus running error/warning counters and a sticky HasErrors flag
// that only Clear resets. Bag is a plain bounded collection with sorting
// and deduplication, BagReporter adapts it to Reporter.
//
// Package diag does not do any terminal formatting; colored output lives in
// internal/diagfmt. FormatShortDiagnostics is the plain one-line-per-record
// form used by the CLI in quiet mode and by tests.
package diag
