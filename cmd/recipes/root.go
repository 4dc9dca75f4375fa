package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"goa.design/clue/log"

	recipemongo "goa.design/recipes/features/recipe/mongo"
	clientsmongo "goa.design/recipes/features/recipe/mongo/clients/mongo"
	"goa.design/recipes/recipe"
	"goa.design/recipes/recipe/seed"
	"goa.design/recipes/telemetry"
)

// validFormats lists the supported log formats.
var validFormats = []string{"json", "text"}

// NewRootCommand creates the root command of the recipes CLI.
func NewRootCommand() *cobra.Command {
	cfg := configFromEnv()

	cmd := &cobra.Command{
		Use:           "recipes",
		Short:         "Administer the recipe store",
		Long:          "Reseed, clean, index and query the MongoDB recipes collection.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(cfg.Format) {
				return fmt.Errorf("invalid log format %q: must be one of %v", cfg.Format, validFormats)
			}
			cmd.SetContext(logContext(cmd.Context(), cmd.ErrOrStderr(), cfg))
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.URI, "uri", cfg.URI, "MongoDB connection URI")
	flags.StringVar(&cfg.Database, "database", cfg.Database, "database name")
	flags.StringVar(&cfg.Collection, "collection", cfg.Collection, "recipes collection name")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-operation timeout (0 disables)")
	flags.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML seed catalog (defaults to the embedded catalog)")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logs")
	flags.StringVar(&cfg.Format, "log-format", cfg.Format, "log format (json|text)")

	cmd.AddCommand(newSetupCommand(&cfg))
	cmd.AddCommand(newCleanCommand(&cfg))
	cmd.AddCommand(newIndexCommand(&cfg))
	cmd.AddCommand(newGetCommand(&cfg))
	cmd.AddCommand(newGetManyCommand(&cfg))
	cmd.AddCommand(newFilterCommand(&cfg))
	cmd.AddCommand(newSearchCommand(&cfg))
	cmd.AddCommand(newPingCommand(&cfg))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range validFormats {
		if f == format {
			return true
		}
	}
	return false
}

func logContext(ctx context.Context, w io.Writer, cfg config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	format := log.FormatJSON
	if cfg.Format == "text" {
		format = log.FormatTerminal
	}
	opts := []log.LogOption{log.WithOutput(w), log.WithFormat(format)}
	if cfg.Debug {
		opts = append(opts, log.WithDebug())
	}
	return log.Context(ctx, opts...)
}

// newStore builds the store described by cfg. The catalog is only loaded
// when withCatalog is set.
func newStore(cfg *config, withCatalog bool) (*recipemongo.Store, error) {
	var catalog []recipe.Recipe
	if withCatalog {
		var err error
		if cfg.SeedFile != "" {
			catalog, err = seed.LoadFile(cfg.SeedFile)
		} else {
			catalog, err = seed.Default()
		}
		if err != nil {
			return nil, err
		}
	}
	return recipemongo.NewStoreFromMongo(clientsmongo.Options{
		URI:        cfg.URI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
		Timeout:    cfg.Timeout,
		Logger:     telemetry.NewClueLogger(),
		Metrics:    telemetry.NewClueMetrics(),
		Tracer:     telemetry.NewClueTracer(),
	}, catalog)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
