package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"adder/internal/codegen"
	"adder/internal/diag"
	"adder/internal/driver"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildDir(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "main.adr", "x = 1\n")
	writeSource(t, root, "sub/util.adr", "def f(a):\n    return a\n")
	writeSource(t, root, "broken.adr", "def f(:\n")
	writeSource(t, root, "notes.txt", "not source")

	report, err := driver.BuildDir(context.Background(), root, driver.BuildOptions{Optimize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Files) != 3 {
		t.Fatalf("built %d files, want 3", len(report.Files))
	}
	if report.Failed != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed)
	}

	for _, f := range report.Files {
		if filepath.Base(f.Path) == "broken.adr" {
			if _, ok := f.Err.(*diag.Diagnostic); !ok {
				t.Errorf("broken file error = %T", f.Err)
			}
			continue
		}
		if f.Err != nil {
			t.Errorf("%s: %v", f.Path, f.Err)
			continue
		}
		data, err := os.ReadFile(f.Output)
		if err != nil {
			t.Errorf("missing output %s: %v", f.Output, err)
			continue
		}
		code, err := codegen.UnmarshalCodeObject(data)
		if err != nil {
			t.Errorf("%s: %v", f.Output, err)
			continue
		}
		if code.Filename != f.Path {
			t.Errorf("%s: filename = %q", f.Output, code.Filename)
		}
	}
}

func TestBuildDirUsesCache(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.adr", "x = 1\n")

	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.BuildOptions{Cache: cache}

	first, err := driver.BuildDir(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached {
		t.Fatal("first build should not hit the cache")
	}

	second, err := driver.BuildDir(context.Background(), root, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].Cached {
		t.Fatal("second build should hit the cache")
	}
}

func TestDiskCacheRoundtrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	res := compileText(t, "y = 2\n", "c.adr", driver.ModeExec, 0, 0)
	key := driver.SourceKey([]byte("y = 2\n"), 0, 0)

	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("empty cache returned ok=%v err=%v", ok, err)
	}

	if err := cache.Put(key, &driver.CachePayload{Filename: "c.adr", Code: res.Code}); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.Filename != "c.adr" || !reflect.DeepEqual(got.Code, res.Code) {
		t.Fatalf("payload mismatch: %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("dropped cache returned ok=%v err=%v", ok, err)
	}
}

func TestSourceKeyDependsOnKnobs(t *testing.T) {
	content := []byte("x = 1\n")
	base := driver.SourceKey(content, 0, 0)
	cases := []driver.Digest{
		driver.SourceKey(content, 1, 0),
		driver.SourceKey(content, 0, driver.FlagBarryAsBDFL),
		driver.SourceKey([]byte("x = 2\n"), 0, 0),
	}
	for i, k := range cases {
		if reflect.DeepEqual(base, k) {
			t.Errorf("case %d: key did not change", i)
		}
	}
}
