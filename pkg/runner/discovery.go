package runner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/langdetect"
)

// File is a discovered file and its language.
type File struct {
	Path     string
	Language Language
}

// scriptSniffSize is how much of an extensionless file is read for detection.
const scriptSniffSize = 4096

// skippedDirs are never descended into, in addition to hidden directories.
//
//nolint:gochecknoglobals // Read-only lookup table.
var skippedDirs = []string{"__pycache__", "node_modules", "venv", "site-packages"}

// walker holds the state of one Discover call.
type walker struct {
	ctx     context.Context
	opts    Options
	workDir string
	exts    []string
	exclude fsutil.PatternSet
	include fsutil.PatternSet

	seen  map[string]bool
	files []File
}

// Discover finds Python files (and Markdown files, when enabled) under opts.Paths.
// Directories are walked recursively; files named explicitly are always classified
// by content when their extension is not recognised. The result is sorted by path.
func Discover(ctx context.Context, opts Options) ([]File, error) {
	w, err := newWalker(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, p := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := w.visitArg(p); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(w.files, func(a, b File) int { return cmp.Compare(a.Path, b.Path) })
	return w.files, nil
}

func newWalker(ctx context.Context, opts Options) (*walker, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := fsutil.CompilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	include, err := fsutil.CompilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	return &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		exts:    opts.effectiveExtensions(),
		exclude: exclude,
		include: include,
		seen:    make(map[string]bool),
	}, nil
}

func (w *walker) visitArg(arg string) error {
	abs := arg
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(w.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", arg, err)
	}
	if info.IsDir() {
		return w.walk(abs)
	}
	w.consider(abs, true)
	return nil
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		name := entry.Name()
		switch {
		case entry.IsDir():
			if path != root && (strings.HasPrefix(name, ".") || slices.Contains(skippedDirs, name)) {
				return filepath.SkipDir
			}
			if w.exclude.Match(w.rel(path)) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return w.visitSymlink(path)
		case !strings.HasPrefix(name, "."):
			w.consider(path, false)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// visitSymlink checks a linked file, or walks a linked directory when FollowSymlinks
// is set. Broken links are skipped.
func (w *walker) visitSymlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable target
	}
	if !info.IsDir() {
		if !strings.HasPrefix(filepath.Base(path), ".") {
			w.consider(path, false)
		}
		return nil
	}
	if !w.opts.FollowSymlinks {
		return nil
	}
	// WalkDir does not follow a symlinked root, so walk the target itself.
	return w.walk(target)
}

func (w *walker) consider(path string, explicit bool) {
	if w.seen[path] {
		return
	}
	rel := w.rel(path)
	if w.exclude.Match(rel) || (len(w.include) > 0 && !w.include.Match(rel)) {
		return
	}
	lang, ok := w.classify(path, explicit)
	if !ok {
		return
	}
	w.seen[path] = true
	w.files = append(w.files, File{Path: path, Language: lang})
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// classify decides the language of path by extension, then by content for
// extensionless scripts or explicitly named files.
func (w *walker) classify(path string, explicit bool) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext != "" && slices.Contains(w.exts, ext):
		return LanguagePython, true
	case ext != "" && w.opts.Markdown && slices.Contains(MarkdownExtensions(), ext):
		return LanguageMarkdown, true
	case !explicit && (ext != "" || !w.opts.DetectScripts):
		return "", false
	}

	head, err := readHead(path, scriptSniffSize)
	if err != nil || !langdetect.DetectFile(path, head).IsPython() {
		return "", false
	}
	return LanguagePython, true
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf[:read], nil
}
