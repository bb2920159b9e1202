package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"adder/internal/driver"
	"adder/internal/ui"
	"adder/internal/version"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive single-statement compile loop",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().IntP("optimize", "O", 0, "optimization level (0 none, 1 fold constants, 2 strip docstrings)")
}

func runRepl(cmd *cobra.Command, args []string) error {
	optimize, _ := cmd.Flags().GetInt("optimize")

	var flags driver.Flags
	if barry, _ := cmd.Root().PersistentFlags().GetBool("barry"); barry {
		flags |= driver.FlagBarryAsBDFL
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Banner(version.Version))
	_, err := tea.NewProgram(ui.NewRepl(flags, optimize)).Run()
	return err
}
