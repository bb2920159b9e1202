package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"adder/internal/diag"
	"adder/internal/driver"
	"adder/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every source file under a directory",
	Long:  `Build walks a directory, compiles each source file in parallel and writes the serialized code objects. With no argument it builds the manifest root, or the current directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().IntP("optimize", "O", -1, "optimization level (-1 inherits the manifest)")
	buildCmd.Flags().String("out", "", "output directory (default: next to each source)")
	buildCmd.Flags().Int("jobs", 0, "parallel compilations (0 = GOMAXPROCS)")
	buildCmd.Flags().Bool("no-cache", false, "recompile even when a cached unit exists")
	buildCmd.Flags().Bool("progress", false, "render interactive per-file progress")
}

func runBuild(cmd *cobra.Command, args []string) error {
	root := ""
	if len(args) == 1 {
		root = args[0]
	}

	manifest, haveManifest, err := loadManifest(root)
	if err != nil {
		return err
	}
	if root == "" {
		if haveManifest {
			root = manifest.Root
		} else {
			root = "."
		}
	}

	opts, err := buildOptions(cmd, manifest, haveManifest)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("progress")
	var report *driver.BuildReport
	if interactive && useColor(cmd, os.Stdout) {
		report, err = buildWithProgress(cmd, root, opts)
	} else {
		report, err = driver.BuildDir(cmd.Context(), root, opts)
	}
	if err != nil {
		return err
	}

	for _, f := range report.Files {
		if f.Err == nil {
			continue
		}
		if d, ok := f.Err.(*diag.Diagnostic); ok {
			reportDiagnostic(cmd, d)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", f.Path, f.Err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "built %d file(s), %d failed\n", len(report.Files), report.Failed)
	if report.Failed > 0 {
		return errSilent
	}
	return nil
}

func buildOptions(cmd *cobra.Command, manifest *projectManifest, haveManifest bool) (driver.BuildOptions, error) {
	optimize, _ := cmd.Flags().GetInt("optimize")
	if optimize == -1 {
		if haveManifest {
			optimize = manifest.Config.Build.Optimize
		} else {
			optimize = 0
		}
	}

	var flags driver.Flags
	if barry, _ := cmd.Root().PersistentFlags().GetBool("barry"); barry {
		flags |= driver.FlagBarryAsBDFL
	}
	if haveManifest && manifest.Config.Build.Barry {
		flags |= driver.FlagBarryAsBDFL
	}

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" && haveManifest {
		outDir = manifest.Config.Build.Out
		if outDir != "" && !filepath.IsAbs(outDir) {
			outDir = filepath.Join(manifest.Root, outDir)
		}
	}

	opts := driver.BuildOptions{Optimize: optimize, Flags: flags, OutDir: outDir}
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")

	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		cache, err := driver.OpenDiskCache("adder")
		if err != nil {
			return opts, fmt.Errorf("open build cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// buildWithProgress runs the build behind the Bubble Tea progress view.
func buildWithProgress(cmd *cobra.Command, root string, opts driver.BuildOptions) (*driver.BuildReport, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, driver.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := make(chan driver.BuildFile, len(files))
	opts.OnFile = func(f driver.BuildFile) { events <- f }

	type buildDone struct {
		report *driver.BuildReport
		err    error
	}
	done := make(chan buildDone, 1)
	go func() {
		report, err := driver.BuildDir(context.Background(), root, opts)
		close(events)
		done <- buildDone{report, err}
	}()

	prog := tea.NewProgram(ui.NewBuildProgress("adder build", files, events), tea.WithOutput(os.Stderr))
	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	res := <-done
	return res.report, res.err
}
