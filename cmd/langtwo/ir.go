package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langtwo/internal/diagfmt"
	"langtwo/internal/driver"
	"langtwo/internal/ir"
	"langtwo/internal/ircache"
)

var irCmd = &cobra.Command{
	Use:   "ir [flags] file.lt2",
	Short: "Lower a langtwo source file to IR",
	Long:  `Lower compiles a langtwo source file to register IR and dumps the listing`,
	Args:  cobra.ExactArgs(1),
	RunE:  runIR,
}

func init() {
	irCmd.Flags().Bool("no-cache", false, "skip the on-disk IR cache")
}

func runIR(cmd *cobra.Command, args []string) error {
	result, err := compile(cmd, args[0])
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if result.Cached && !quiet {
		fmt.Fprintln(os.Stderr, "(cached)")
	}
	ir.Dump(os.Stdout, result.IR)
	return nil
}

// compile builds a file, prints its diagnostics, and exits on errors.
// The cache is consulted unless --no-cache is set or opening it fails.
func compile(cmd *cobra.Command, path string) (*driver.BuildResult, error) {
	var cache *ircache.Cache
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		if c, err := ircache.Open("langtwo"); err == nil {
			cache = c
		}
	}

	result, err := driver.BuildFile(path, maxDiagnostics(cmd), cache)
	if err != nil {
		return nil, fmt.Errorf("compilation failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
		diagfmt.Pretty(os.Stderr, result.Bag, result.File, opts)
	}
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return result, nil
}
