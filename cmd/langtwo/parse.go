package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langtwo/internal/ast"
	"langtwo/internal/diagfmt"
	"langtwo/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lt2",
	Short: "Parse a langtwo source file",
	Long:  `Parse builds the syntax tree of a langtwo source file and dumps it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.ParseFile(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
		diagfmt.Pretty(os.Stderr, result.Bag, result.File, opts)
	}

	ast.Dump(os.Stdout, result.Program)
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
