// Command compilerlab compiles a small C-like source program to
// line-oriented abstract-machine assembly.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"compilerlab/pkg/compiler"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		warningsAsErrors bool
		outputPath       string
		verbose          bool
	)

	cmd := &cobra.Command{
		Use:           "compilerlab [source-file]",
		Short:         "Compile a compilerlab source program to abstract-machine assembly",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("start logger: %w", err)
				}
				logger = l
				defer logger.Sync()
			}

			result, compErr := compiler.Compile(src, compiler.Options{
				WarningsAsErrors: warningsAsErrors,
				Logger:           logger,
			})
			compiler.WriteDiagnostics(os.Stderr, result.Warnings, compErr)
			if compErr != nil {
				return errSilent
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("open output: %w", err)
				}
				defer f.Close()
				out = f
			}
			_, err = io.WriteString(out, result.Assembly)
			return err
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "warnings-as-errors", false, "treat any warning as a fatal error")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write assembly to this file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace pipeline stages to stderr")

	return cmd
}

// errSilent is returned to cobra to signal a non-zero exit without
// duplicating a diagnostic already written by WriteDiagnostics.
var errSilent = fmt.Errorf("compilation failed")

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
