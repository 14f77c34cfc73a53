package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langtwo/internal/diagfmt"
	"langtwo/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.lt2...",
	Short: "Check langtwo source files",
	Long:  `Check compiles each file to IR in parallel and reports diagnostics without executing anything`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, err := driver.BuildAll(cmd.Context(), args, maxDiagnostics(cmd))
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}

	failed := false
	for _, result := range results {
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.File, opts)
		}
		if result.Bag.HasErrors() {
			failed = true
			continue
		}
		if !quiet {
			fmt.Printf("%s: ok (%d instructions)\n", result.File.Path, len(result.IR.Instructions))
		}
	}
	if failed {
		os.Exit(1)
	}
	return nil
}
