package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/pyhl/pkg/runner"
)

// writeTree creates files (relative path -> content) under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func paths(files []runner.File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func assertPaths(t *testing.T, dir string, got []runner.File, want ...string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(got), paths(got))
	}
	for i, rel := range want {
		if exp := filepath.Join(dir, rel); got[i].Path != exp {
			t.Errorf("file[%d] = %s, want %s", i, got[i].Path, exp)
		}
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"app.py": "x = 1\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"app.py"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "app.py")
	if files[0].Language != runner.LanguagePython {
		t.Errorf("expected python, got %q", files[0].Language)
	}
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.py":                    "print()\n",
		"gui.pyw":                    "pass\n",
		"pkg/types.pyi":              "x: int\n",
		"pkg/__pycache__/main.py":    "cached\n",
		".venv/lib/site.py":          "hidden\n",
		"README.md":                  "# readme\n",
		"src/main.go":                "package main\n",
		"notes.txt":                  "def f():\n",
		"pkg/.hidden.py":             "hidden\n",
		"venv/lib/python3/stdlib.py": "ignored\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	assertPaths(t, dir, files, "gui.pyw", "main.py", "pkg/types.pyi")
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": ""})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "a.py")
}

func TestDiscover_Markdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":            "",
		"docs/guide.md":     "# Guide\n",
		"docs/api.markdown": "# API\n",
	})

	opts := runner.Options{WorkingDir: dir}

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "app.py")

	opts.Markdown = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "app.py", "docs/api.markdown", "docs/guide.md")
	if files[1].Language != runner.LanguageMarkdown {
		t.Errorf("expected markdown, got %q", files[1].Language)
	}
}

func TestDiscover_Scripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"bin/deploy": "#!/usr/bin/env python3\nimport sys\n",
		"bin/build":  "#!/bin/sh\necho hi\n",
		"bin/tool":   "from pathlib import Path\n",
		"notes":      "hello world\n",
	})

	opts := runner.Options{WorkingDir: dir}
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files without script detection, got %v", paths(files))
	}

	opts.DetectScripts = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "bin/deploy", "bin/tool")
}

func TestDiscover_ExplicitFileIsSniffed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"manage":   "#!/usr/bin/env python\nprint('ok')\n",
		"build.sh": "#!/bin/sh\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"manage", "build.sh"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "manage")
}

func TestDiscover_ExcludeAndIncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"app.py":                 "",
		"build/lib/app.py":       "",
		"tests/test_app.py":      "",
		"pkg/migrations/0001.py": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"build/**", "**/migrations"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "app.py", "tests/test_app.py")

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		IncludeGlobs: []string{"tests/**"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "tests/test_app.py")
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "", "sub/b.py": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.py", "sub"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	assertPaths(t, dir, files, "a.py", "sub/b.py")
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"x.py": ""})

	dir := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir}
	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected directory symlinks to be skipped, got %v", paths(files))
	}

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected the link target to be walked, got %v", paths(files))
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"nope.py"},
		WorkingDir: t.TempDir(),
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
