package compiler

import (
	"fmt"
	"io"
)

// DiagKind is one of the three recognized diagnostic kinds. No others are
// ever emitted.
type DiagKind string

const (
	NotDefined         DiagKind = "Not defined"
	TypeError          DiagKind = "Type error"
	ImplicitTypeCasting DiagKind = "Implicit type casting"
)

// Diagnostic is one warning or error record, line-prefixed and carrying a
// pretty-printed snippet of the offending construct.
type Diagnostic struct {
	Line    int
	Kind    DiagKind
	Detail  string // appended after Kind when non-empty, e.g. "Should return a value"
	Snippet string
}

func (d Diagnostic) message() string {
	if d.Detail != "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
	}
	return string(d.Kind)
}

func (d Diagnostic) writeTo(w io.Writer, severity string) {
	fmt.Fprintf(w, "line %d: %s: %s\n\t%s\n", d.Line, severity, d.message(), d.Snippet)
}

// fatalDiagnostic is panicked by diagSink.error and recovered by Compile.
// This is how "the error sink does not return" (spec.md's error-handling
// contract) is realized without an os.Exit call buried inside the library.
type fatalDiagnostic struct {
	diag Diagnostic
}

func (f fatalDiagnostic) Error() string {
	return fmt.Sprintf("line %d: error: %s", f.diag.Line, f.diag.message())
}

// diagSink collects warnings and raises fatal errors during a single
// compilation. warningsAsErrors upgrades every warning call into a fatal
// error, matching the CLI's --warnings-as-errors flag.
type diagSink struct {
	warnings         []Diagnostic
	warningsAsErrors bool
}

// warning records a non-fatal diagnostic. If warningsAsErrors is set, it is
// promoted to a fatal error instead.
func (s *diagSink) warning(line int, kind DiagKind, detail, snippet string) {
	d := Diagnostic{Line: line, Kind: kind, Detail: detail, Snippet: snippet}
	if s.warningsAsErrors {
		panic(fatalDiagnostic{diag: d})
	}
	s.warnings = append(s.warnings, d)
}

// error raises a fatal diagnostic. It never returns: control unwinds via
// panic to Compile, which recovers it and turns it into a Go error.
func (s *diagSink) error(line int, kind DiagKind, detail, snippet string) {
	panic(fatalDiagnostic{diag: Diagnostic{Line: line, Kind: kind, Detail: detail, Snippet: snippet}})
}

// WriteDiagnostics writes every warning, followed by the fatal error if any,
// to w in the line-prefixed wire format. fatalErr should be the error
// Compile returned; a non-fatalDiagnostic error (e.g. a lex/parse failure)
// is written as a single unprefixed line instead.
func WriteDiagnostics(w io.Writer, warnings []Diagnostic, fatalErr error) {
	for _, d := range warnings {
		d.writeTo(w, "warning")
	}
	if fatalErr == nil {
		return
	}
	if fd, ok := fatalErr.(fatalDiagnostic); ok {
		fd.diag.writeTo(w, "error")
		return
	}
	fmt.Fprintln(w, fatalErr.Error())
}
