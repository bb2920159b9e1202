package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"adder/internal/codegen"
)

// SourceExt is the extension of compilable source files.
const SourceExt = ".adr"

// CompiledExt is the extension of serialized code objects.
const CompiledExt = ".adc"

// BuildOptions configures a directory build.
type BuildOptions struct {
	Optimize int
	Flags    Flags
	// OutDir receives the compiled units; empty writes next to the source.
	OutDir string
	// Cache skips recompilation of unchanged sources when non-nil.
	Cache *DiskCache
	// Jobs bounds build parallelism; <= 0 uses GOMAXPROCS.
	Jobs int
	// OnFile, when non-nil, is invoked as each file finishes. It is called
	// from worker goroutines and must be safe for concurrent use.
	OnFile func(BuildFile)
}

// BuildFile is the outcome for one source file.
type BuildFile struct {
	Path   string
	Output string
	Cached bool
	Err    error // *diag.Diagnostic for compile failures, I/O errors otherwise
}

// BuildReport summarizes a directory build.
type BuildReport struct {
	Files  []BuildFile
	Failed int
}

// BuildDir compiles every source file under root concurrently and writes
// the serialized code objects. Per-file failures are collected in the
// report; the returned error covers traversal and cancellation only.
func BuildDir(ctx context.Context, root string, opts BuildOptions) (*BuildReport, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	report := &BuildReport{Files: make([]BuildFile, len(paths))}
	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := buildOne(path, root, opts)
			report.Files[i] = res
			if opts.OnFile != nil {
				opts.OnFile(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range report.Files {
		if report.Files[i].Err != nil {
			report.Failed++
		}
	}
	return report, nil
}

func buildOne(path, root string, opts BuildOptions) BuildFile {
	out := BuildFile{Path: path}

	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the build root walk
	if err != nil {
		out.Err = err
		return out
	}

	outPath, err := outputPath(path, root, opts.OutDir)
	if err != nil {
		out.Err = err
		return out
	}
	out.Output = outPath

	key := SourceKey(raw, opts.Optimize, opts.Flags)
	if payload, ok, err := opts.Cache.Get(key); err == nil && ok {
		out.Cached = true
		out.Err = writeCode(outPath, payload.Code)
		return out
	}

	res, cerr := Compile(BytesInput(raw), path, ModeExec, opts.Flags, nil, opts.Optimize)
	if cerr != nil {
		out.Err = cerr
		return out
	}

	if err := writeCode(outPath, res.Code); err != nil {
		out.Err = err
		return out
	}
	out.Err = opts.Cache.Put(key, &CachePayload{
		Filename: path,
		Optimize: opts.Optimize,
		Code:     res.Code,
	})
	return out
}

func outputPath(path, root, outDir string) (string, error) {
	compiled := strings.TrimSuffix(path, SourceExt) + CompiledExt
	if outDir == "" {
		return compiled, nil
	}
	rel, err := filepath.Rel(root, compiled)
	if err != nil {
		return "", fmt.Errorf("resolve output path for %s: %w", path, err)
	}
	return filepath.Join(outDir, rel), nil
}

func writeCode(path string, code *codegen.CodeObject) error {
	data, err := code.Marshal()
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) // #nosec G306 -- compiled units are not secrets
}
