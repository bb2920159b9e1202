package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adder/internal/diag"
	"adder/internal/diagfmt"
	"adder/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file" + driver.SourceExt,
	Short: "Tokenize an adder source file",
	Long:  `Tokenize breaks a source file into its token stream, including the synthetic INDENT/DEDENT tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("no-implied-dedent", false, "suppress the NEWLINE/DEDENT tokens implied at EOF")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	var flags driver.Flags
	if noImply, _ := cmd.Flags().GetBool("no-implied-dedent"); noImply {
		flags |= driver.FlagDontImplyDedent
	}

	result, err := driver.Tokenize(args[0], flags)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.FileSet); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Detail != nil {
		reportDiagnostic(cmd, diag.FromDetail(result.Detail))
		return errSilent
	}
	return nil
}
