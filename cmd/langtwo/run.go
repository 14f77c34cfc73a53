package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langtwo/internal/diagfmt"
	"langtwo/internal/driver"
	"langtwo/internal/interp"
	"langtwo/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.lt2]",
	Short: "Compile and execute a langtwo program",
	Long: `Run compiles a langtwo source file and executes it.

With no file argument, the entry point comes from the nearest langtwo.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().String("backend", "vm", "execution backend (vm|interp)")
	runCmd.Flags().Bool("vm-trace", false, "enable VM execution tracing")
	runCmd.Flags().Bool("no-cache", false, "skip the on-disk IR cache")
}

func runExecution(cmd *cobra.Command, args []string) error {
	backend, err := cmd.Flags().GetString("backend")
	if err != nil {
		return fmt.Errorf("failed to get backend flag: %w", err)
	}

	var filePath string
	if len(args) == 1 {
		filePath = args[0]
	} else {
		filePath, err = entryFromManifest()
		if err != nil {
			return err
		}
	}

	switch backend {
	case "vm":
		return runVM(cmd, filePath)
	case "interp":
		return runInterp(cmd, filePath)
	default:
		return fmt.Errorf("unsupported backend: %s (vm|interp)", backend)
	}
}

func runVM(cmd *cobra.Command, filePath string) error {
	result, err := compile(cmd, filePath)
	if err != nil {
		return err
	}

	vmTrace, _ := cmd.Flags().GetBool("vm-trace")
	machine, err := vm.New(result.IR, vm.Options{Trace: vmTrace, TraceW: os.Stderr})
	if err != nil {
		return fmt.Errorf("vm setup failed: %w", err)
	}
	if fault := machine.Run(); fault != nil {
		fmt.Fprintln(os.Stderr, fault.Error())
		os.Exit(1)
	}

	value, ok := machine.Result()
	printResult(cmd, value, ok)
	return nil
}

func runInterp(cmd *cobra.Command, filePath string) error {
	result, err := driver.ParseFile(filePath, maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)}
		diagfmt.Pretty(os.Stderr, result.Bag, result.File, opts)
	}
	if result.Bag.HasErrors() {
		os.Exit(1)
	}

	value, ok, err := interp.New(os.Stdout).Run(result.Program)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet && ok {
		fmt.Printf("= %s\n", value)
	}
	return nil
}

func printResult(cmd *cobra.Command, value int32, ok bool) {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet || !ok {
		return
	}
	fmt.Printf("= %d\n", value)
}
