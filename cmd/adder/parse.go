package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adder/internal/diagfmt"
	"adder/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file" + driver.SourceExt,
	Short: "Parse a source file and dump its concrete parse tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("mode", "exec", "grammar entry point (exec|eval|single)")
}

func runParse(cmd *cobra.Command, args []string) error {
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	mode, d := driver.ParseMode(modeStr)
	if d != nil {
		reportDiagnostic(cmd, d)
		return errSilent
	}

	var flags driver.Flags
	if barry, _ := cmd.Root().PersistentFlags().GetBool("barry"); barry {
		flags |= driver.FlagBarryAsBDFL
	}

	result, err := driver.ParseFile(args[0], mode, flags)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if result.Diag != nil {
		reportDiagnostic(cmd, result.Diag)
		return errSilent
	}

	diagfmt.DumpParseTree(os.Stdout, result.Tree, result.FileSet)
	return nil
}
