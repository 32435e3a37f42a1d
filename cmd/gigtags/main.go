package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/gigtags/internal"
	pkgconfig "github.com/starford/gigtags/pkg/config"
)

var version = "dev"

// loadConfig reads the config file named by --config. Missing files fall
// back to the defaults unless required is set.
func loadConfig(cmd *cli.Command, required bool) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	load := pkgconfig.LoadIfExists[internal.Config]
	if required {
		load = pkgconfig.Load[internal.Config]
	}
	if err := load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "gigtags",
		Usage:   "Validate, split and build facets with a ~YYYYMMDD date suffix",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "Inspect one or more facets",
				ArgsUsage: "FACET...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: json or yaml",
						Value: formatJSON,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return inspect(ctx, os.Stdout, cmd.String("format"), cmd.Args().Slice())
				},
			},
			{
				Name:  "build",
				Usage: "Append a date suffix to a prefix",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Usage: "Facet prefix"},
					&cli.StringFlag{Name: "date", Usage: "Date in YYYY-MM-DD format", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return build(ctx, os.Stdout, cmd.String("prefix"), cmd.String("date"))
				},
			},
			{
				Name:  "lint",
				Usage: "Lint the facets of every note in the vault",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "vault", Usage: "Vault directory (overrides vault.path)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd, false)
					if err != nil {
						return err
					}
					if v := cmd.String("vault"); v != "" {
						cfg.Vault.Path = v
					}
					return lintVault(ctx, os.Stdout, cfg)
				},
			},
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errFindings) {
			os.Exit(2)
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
