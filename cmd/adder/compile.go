package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"adder/internal/diag"
	"adder/internal/diagfmt"
	"adder/internal/driver"
	"adder/internal/observ"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file" + driver.SourceExt,
	Short: "Compile one source file to a serialized code object",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("mode", "exec", "grammar entry point (exec|eval|single)")
	compileCmd.Flags().IntP("optimize", "O", -1, "optimization level (-1 inherits the manifest, 0 none, 1 fold constants, 2 strip docstrings)")
	compileCmd.Flags().String("out", "", "output path (default: source with "+driver.CompiledExt+")")
	compileCmd.Flags().Bool("ast", false, "stop after validation and dump the syntax tree")
	compileCmd.Flags().Bool("dis", false, "disassemble instead of writing the output file")
	compileCmd.Flags().String("errors", "pretty", "diagnostic format (pretty|json)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]

	modeStr, _ := cmd.Flags().GetString("mode")
	mode, d := driver.ParseMode(modeStr)
	if d != nil {
		return reportCompileError(cmd, d)
	}

	optimize, _ := cmd.Flags().GetInt("optimize")
	flags, env, err := ambientConfig(cmd, path)
	if err != nil {
		return err
	}

	astOnly, _ := cmd.Flags().GetBool("ast")
	if astOnly {
		flags |= driver.FlagASTOnly
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return err
	}

	var tm *observ.Timer
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		tm = observ.NewTimer()
	}

	res, cerr := driver.CompileTimed(driver.BytesInput(raw), path, mode, flags, env, optimize, tm)
	if tm != nil {
		fmt.Fprint(os.Stderr, tm.Summary())
	}
	if cerr != nil {
		if d, ok := cerr.(*diag.Diagnostic); ok {
			return reportCompileError(cmd, d)
		}
		return cerr
	}

	if astOnly {
		diagfmt.DumpAST(os.Stdout, res.AST)
		return nil
	}
	if dis, _ := cmd.Flags().GetBool("dis"); dis {
		diagfmt.Disassemble(os.Stdout, res.Code)
		return nil
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = strings.TrimSuffix(path, driver.SourceExt) + driver.CompiledExt
	}
	data, err := res.Code.Marshal()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", outPath, err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil { // #nosec G306 -- compiled units are not secrets
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}

// ambientConfig folds the manifest and persistent flags into the compile
// environment. The manifest is optional.
func ambientConfig(cmd *cobra.Command, path string) (driver.Flags, *driver.Env, error) {
	var flags driver.Flags
	if barry, _ := cmd.Root().PersistentFlags().GetBool("barry"); barry {
		flags |= driver.FlagBarryAsBDFL
	}

	manifest, ok, err := loadManifest(startDirFor(path))
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return flags, nil, nil
	}

	env := &driver.Env{Optimize: manifest.Config.Build.Optimize}
	if manifest.Config.Build.Barry {
		env.Flags |= driver.FlagBarryAsBDFL
	}
	return flags, env, nil
}

func startDirFor(path string) string {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func reportCompileError(cmd *cobra.Command, d *diag.Diagnostic) error {
	format, _ := cmd.Flags().GetString("errors")
	if format == "json" {
		if err := diagfmt.WriteJSON(os.Stderr, d); err != nil {
			return err
		}
		return errSilent
	}
	reportDiagnostic(cmd, d)
	return errSilent
}
