package lint

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/gigtags/internal/models"
)

// Event kinds passed to EventCallback.
const (
	EventLinted  = "linted"
	EventRemoved = "removed"
)

// EventCallback is called after a watcher-driven lint change.
// For EventRemoved only report.Path is set.
type EventCallback func(kind string, report models.Report)

// Watch starts an fsnotify watcher on the vault root and re-lints notes as
// they change until ctx is cancelled. It calls cb (if non-nil) after each
// lint or removal.
//
// New directories created at runtime are added to the watch list. Renames
// arrive as a removal of the old path followed by a create of the new one.
func Watch(ctx context.Context, l *Linter, vaultRoot string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					lintNewDir(ctx, l, vaultRoot, absPath, logger, cb)
					continue
				}
			}

			if !strings.HasSuffix(absPath, ".md") {
				continue
			}

			rel, relErr := filepath.Rel(vaultRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				report, lintErr := l.LintNote(ctx, rel)
				if lintErr != nil {
					logger.Warn("watcher: lint failed", slog.String("path", rel), slog.String("error", lintErr.Error()))
					continue
				}
				logger.Debug("watcher: linted",
					slog.String("path", rel),
					slog.Int("findings", len(report.Findings)))
				if cb != nil {
					cb(EventLinted, report)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				l.Forget(rel)
				logger.Debug("watcher: removed", slog.String("path", rel))
				if cb != nil {
					cb(EventRemoved, models.Report{Path: rel})
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// lintNewDir lints any .md files found in a newly created directory.
func lintNewDir(ctx context.Context, l *Linter, vaultRoot, dirPath string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(vaultRoot, path)
		if relErr != nil {
			return nil
		}
		report, lintErr := l.LintNote(ctx, filepath.ToSlash(rel))
		if lintErr != nil {
			return nil
		}
		logger.Debug("watcher: linted from new dir", slog.String("path", report.Path))
		if cb != nil {
			cb(EventLinted, report)
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
