package lint

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/starford/gigtags/internal/apperr"
	"github.com/starford/gigtags/internal/models"
	"github.com/starford/gigtags/internal/storage"
)

// Linter lints the notes of a vault. The last report of every note is kept
// in memory and reused while the note's checksum does not change.
type Linter struct {
	store  storage.Provider
	ignore map[string]struct{}
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]models.Report
}

// New creates a Linter over store. Facets listed in ignore are never reported.
func New(store storage.Provider, ignore []string, logger *slog.Logger) *Linter {
	set := make(map[string]struct{}, len(ignore))
	for _, f := range ignore {
		set[f] = struct{}{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Linter{
		store:  store,
		ignore: set,
		logger: logger,
		cache:  make(map[string]models.Report),
	}
}

// CheckContent lints note content that is not part of the vault.
func (l *Linter) CheckContent(name string, data []byte) (models.Report, error) {
	return Check(name, data, l.ignore)
}

// LintNote lints a single note of the vault.
// Returns apperr.ErrNotFound if the note does not exist.
func (l *Linter) LintNote(_ context.Context, path string) (models.Report, error) {
	data, err := l.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Report{}, apperr.ErrNotFound
		}
		return models.Report{}, err
	}
	return l.lint(path, data)
}

// LintVault lints every note of the vault. Notes whose checksum matches the
// cached report are not parsed again.
func (l *Linter) LintVault(ctx context.Context) (models.VaultReport, error) {
	metas, err := l.store.List("")
	if err != nil {
		return models.VaultReport{}, err
	}

	out := models.VaultReport{Reports: []models.Report{}}
	seen := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return models.VaultReport{}, err
		}
		seen[m.Path] = struct{}{}

		report, ok := l.cached(m.Path, m.Checksum)
		if !ok {
			data, readErr := l.store.Read(m.Path)
			if readErr != nil {
				l.logger.Warn("lint: read failed", slog.String("path", m.Path), slog.String("error", readErr.Error()))
				continue
			}
			if report, err = l.lint(m.Path, data); err != nil {
				l.logger.Warn("lint: check failed", slog.String("path", m.Path), slog.String("error", err.Error()))
				continue
			}
		}

		out.Notes++
		out.Facets += report.Facets
		out.Findings += len(report.Findings)
		if len(report.Findings) > 0 {
			out.Reports = append(out.Reports, report)
		}
	}

	l.prune(seen)
	sort.Slice(out.Reports, func(i, j int) bool { return out.Reports[i].Path < out.Reports[j].Path })

	l.logger.Debug("lint: vault checked",
		slog.Int("notes", out.Notes),
		slog.Int("facets", out.Facets),
		slog.Int("findings", out.Findings))
	return out, nil
}

// Forget drops the cached report of path.
func (l *Linter) Forget(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, path)
}

func (l *Linter) lint(path string, data []byte) (models.Report, error) {
	report, err := Check(path, data, l.ignore)
	if err != nil {
		return report, err
	}
	l.mu.Lock()
	l.cache[path] = report
	l.mu.Unlock()
	return report, nil
}

func (l *Linter) cached(path, sum string) (models.Report, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.cache[path]
	if !ok || r.Checksum != sum {
		return models.Report{}, false
	}
	return r, true
}

// prune removes cached reports of notes that no longer exist.
func (l *Linter) prune(seen map[string]struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for p := range l.cache {
		if _, ok := seen[p]; !ok {
			delete(l.cache, p)
		}
	}
}
