package compiler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Options configures a single Compile call.
type Options struct {
	WarningsAsErrors bool
	Logger           *zap.Logger // defaults to a no-op logger when nil
}

// Result is the outcome of a Compile call: the generated assembly text plus
// any non-fatal warnings collected along the way. After a fatal diagnostic
// only Warnings is set.
type Result struct {
	Assembly string
	Warnings []Diagnostic
}

// Compile runs the full pipeline over src: lex, parse, resolve, generate.
// A fatal diagnostic raised anywhere in the resolver surfaces here as a
// plain error; the result's Warnings are still populated with whatever
// non-fatal diagnostics were collected before the fatal one.
func Compile(src string, opts Options) (result Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sink := &diagSink{warningsAsErrors: opts.WarningsAsErrors}

	defer func() {
		if rec := recover(); rec != nil {
			fd, ok := rec.(fatalDiagnostic)
			if !ok {
				panic(rec)
			}
			result = Result{Warnings: sink.warnings}
			err = fd
		}
	}()

	tokens, lexErr := Lex(src)
	if lexErr != nil {
		return Result{}, fmt.Errorf("lex: %w", lexErr)
	}
	logger.Debug("lexed", zap.Int("tokens", len(tokens)))

	prog, parseErr := Parse(tokens, src)
	if parseErr != nil {
		return Result{}, fmt.Errorf("parse: %w", parseErr)
	}
	logger.Debug("parsed", zap.Int("globals", len(prog.Globals)), zap.Int("functions", len(prog.Funcs)))

	global, blockScopes := Resolve(prog, sink)
	logger.Debug("resolved", zap.Int("warnings", len(sink.warnings)))

	assembly := Generate(prog, global, blockScopes)
	logger.Debug("generated", zap.Int("lines", strings.Count(assembly, "\n")))

	return Result{Assembly: assembly, Warnings: sink.warnings}, nil
}
