package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/pyhl/internal/logging"
	"github.com/yaklabco/pyhl/internal/ui/pretty"
	"github.com/yaklabco/pyhl/pkg/document"
	"github.com/yaklabco/pyhl/pkg/fsutil"
	"github.com/yaklabco/pyhl/pkg/highlight"
	"github.com/yaklabco/pyhl/pkg/theme"
)

type watchedFile struct {
	path   string
	doc    *document.Document
	snap   *fsutil.Snapshot
	logger *log.Logger
}

// watcher re-renders documents when their files change on disk.
type watcher struct {
	files    map[string]*watchedFile
	renderer *theme.Renderer
	styles   *pretty.Styles
	out      io.Writer
	logger   *log.Logger
}

func newWatcher(out io.Writer, renderer *theme.Renderer, styles *pretty.Styles, logger *log.Logger) *watcher {
	return &watcher{
		files:    make(map[string]*watchedFile),
		renderer: renderer,
		styles:   styles,
		out:      out,
		logger:   logger,
	}
}

// add starts tracking doc, whose name is its file path.
func (w *watcher) add(ctx context.Context, doc *document.Document) (*watchedFile, error) {
	path, err := filepath.Abs(doc.Name())
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", doc.Name(), err)
	}

	_, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	wf := &watchedFile{
		path:   path,
		doc:    doc,
		snap:   snap,
		logger: logging.ForDocument(w.logger, doc.Name(), doc.Handle().String()),
	}
	w.files[path] = wf
	return wf, nil
}

// run handles file events until ctx is done or events is closed.
func (w *watcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			wf, watched := w.files[filepath.Clean(ev.Name)]
			if !watched || ev.Op == fsnotify.Chmod {
				continue
			}
			wf.logger.Debug("file event", logging.FieldEvent, ev.Op.String())
			if err := w.refresh(ctx, wf); err != nil {
				wf.logger.Warn("refresh failed", logging.FieldError, err)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)
		}
	}
}

// refresh re-reads a file whose snapshot is stale and prints the lines that changed.
func (w *watcher) refresh(ctx context.Context, wf *watchedFile) error {
	changed, err := wf.snap.Changed(ctx)
	if err != nil || !changed {
		return err
	}

	content, snap, err := fsutil.ReadFile(ctx, wf.path)
	if errors.Is(err, fsutil.ErrNotFound) {
		// Editors that save by rename briefly remove the file; the Create event follows.
		wf.logger.Debug("file missing, waiting for it to return")
		return nil
	}
	if err != nil {
		return err
	}
	wf.snap = snap

	before := wf.doc.Version()
	res, err := wf.doc.Replace(highlight.SplitLines(string(content)))
	if err != nil {
		return err
	}
	if res.Version == before {
		return nil
	}

	wf.logger.Debug("document updated",
		logging.FieldVersion, res.Version,
		logging.FieldUpdated, len(res.Updates),
	)
	return w.print(wf, res)
}

func (w *watcher) print(wf *watchedFile, res document.Result) error {
	lines := wf.doc.Snapshot().Lines
	width := theme.GutterWidth(len(lines))

	noun := "lines"
	if len(res.Updates) == 1 {
		noun = "line"
	}
	header := w.styles.Heading.Render(wf.doc.Name()) +
		w.styles.Dim.Render(fmt.Sprintf(" v%d, %d %s updated", res.Version, len(res.Updates), noun))
	if _, err := fmt.Fprintln(w.out, header); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	for _, u := range res.Updates {
		if u.Line >= len(lines) {
			continue
		}
		if _, err := fmt.Fprintln(w.out, w.renderer.Row(u.Line, width, lines[u.Line], u.Styles)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	for _, p := range res.Problems {
		msg := fmt.Sprintf("  %s  %s", formatPosition(p.Pos), p.Detail())
		if _, err := fmt.Fprintln(w.out, w.styles.Warning.Render(msg)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return nil
}

// watchDocuments watches the directories of docs until the command's context ends.
// Directories rather than files are watched so saves that replace the file are seen.
func watchDocuments(cmd *cobra.Command, s *session, docs []*document.Document, renderer *theme.Renderer) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	level := "info"
	if s.debug {
		level = "debug"
	}
	logger := logging.NewInteractive(level)
	logger.SetOutput(cmd.ErrOrStderr())

	w := newWatcher(cmd.OutOrStdout(), renderer, s.styles(cmd.OutOrStdout()), logger)

	dirs := make(map[string]bool)
	for _, doc := range docs {
		wf, err := w.add(s.ctx, doc)
		if err != nil {
			return err
		}
		dir := filepath.Dir(wf.path)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	logger.Info("watching for changes, press Ctrl-C to stop", logging.FieldFiles, len(w.files))

	return w.run(s.ctx, fsw.Events, fsw.Errors)
}
