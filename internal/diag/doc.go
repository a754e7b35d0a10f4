// Package diag is the diagnostics engine of the front end.
//
// # Data model
//
// Every Code maps to a static Info record: baseline Severity, Category and a
// message template with %0..%9 placeholders. A Diagnostic is the transient
// record built from a Code, a source.Range and up to MaxArgs typed Args.
//
// # Policy
//
// Engine.Diagnose applies the live Policy before anything is shown:
//
//   - WarningsAsErrors promotes Warning to Error.
//   - SuppressNotes / SuppressWarnings drop those classes without counting them.
//   - MaxErrors stops reporting errors past the cutoff; they are still counted.
//   - ErrorsFatal caps the effective MaxErrors at 1.
//
// The engine never fails observably. Callers poll DidError, NumErrors and
// NumWarnings to decide whether to halt.
//
// # Reporters
//
// Reporters receive only diagnostics that survived the policy. BagReporter
// collects into a Bag, DedupReporter filters repeats, MultiReporter fans out.
// Rendering lives in internal/diagfmt.
package diag
