package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langtwo/internal/diagfmt"
	"langtwo/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lt2",
	Short: "Tokenize a langtwo source file",
	Long:  `Tokenize breaks down a langtwo source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.TokenizeFile(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
		diagfmt.Pretty(os.Stderr, result.Bag, result.File, opts)
	}

	diagfmt.Tokens(os.Stdout, result.Tokens, result.File)
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
