package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/starford/gigtags/internal"
	"github.com/starford/gigtags/internal/facetservice"
)

// Output formats of the inspect command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// errFindings is returned by lint when the vault has findings.
var errFindings = errors.New("lint findings")

func inspect(ctx context.Context, w io.Writer, format string, facets []string) error {
	if len(facets) == 0 {
		return errors.New("inspect: at least one facet is required")
	}
	if format != formatJSON && format != formatYAML {
		return fmt.Errorf("inspect: unknown format %q", format)
	}

	svc := facetservice.NewService()
	for _, raw := range facets {
		res, err := svc.Inspect(ctx, raw)
		if err != nil {
			return fmt.Errorf("inspect %q: %w", raw, err)
		}
		if err := encode(w, format, res); err != nil {
			return err
		}
	}
	return nil
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func build(ctx context.Context, w io.Writer, prefix, date string) error {
	f, err := facetservice.NewService().Build(ctx, facetservice.BuildRequest{Prefix: prefix, Date: date})
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	_, err = fmt.Fprintln(w, f)
	return err
}

func lintVault(ctx context.Context, w io.Writer, cfg *internal.Config) error {
	linter, err := internal.NewLinter(cfg, slog.Default())
	if err != nil {
		return err
	}
	report, err := linter.LintVault(ctx)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	if err := encode(w, formatJSON, report); err != nil {
		return err
	}
	if report.Findings > 0 {
		return fmt.Errorf("%w: %d", errFindings, report.Findings)
	}
	return nil
}
