package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"goa.design/clue/health"
	"goa.design/clue/log"

	"goa.design/recipes/recipe"
)

func newSetupCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Drop the collection, load the seed catalog and recreate the search index",
		Long: `Reseed the recipe store from the seed catalog.

The collection is dropped, the catalog inserted and the full-text index
recreated. Readers running concurrently may observe an empty or partially
loaded collection; run it only against stores not serving traffic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(cfg, true)
			if err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			if err := store.Setup(cmd.Context()); err != nil {
				return fmt.Errorf("setup: %w", err)
			}
			log.Info(cmd.Context(), log.KV{K: "msg", V: "recipe store reseeded"}, log.KV{K: "collection", V: cfg.Collection})
			return nil
		},
	}
}

func newCleanCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Drop the recipes collection and its indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("clean: %w", err)
			}
			if err := store.Clean(cmd.Context()); err != nil {
				return fmt.Errorf("clean: %w", err)
			}
			log.Info(cmd.Context(), log.KV{K: "msg", V: "recipe store dropped"}, log.KV{K: "collection", V: cfg.Collection})
			return nil
		},
	}
}

func newIndexCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Ensure the full-text search index exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			if err := store.CreateSearchIndex(cmd.Context()); err != nil {
				return fmt.Errorf("index: %w", err)
			}
			return nil
		},
	}
}

// errNotFound is reported by get when the recipe does not exist.
var errNotFound = errors.New("recipe not found")

func newGetCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a recipe by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			r, ok, err := store.RecipeByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if !ok {
				return fmt.Errorf("get %s: %w", args[0], errNotFound)
			}
			return writeJSON(cmd.OutOrStdout(), r)
		},
	}
}

func newGetManyCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "get-many [id...]",
		Short: "Print the recipes with the given ids, or every recipe when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := recipe.ParseIDs(args)
			if err != nil {
				return fmt.Errorf("get-many: %w", err)
			}
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("get-many: %w", err)
			}
			recipes, err := store.Recipes(cmd.Context(), ids)
			if err != nil {
				return fmt.Errorf("get-many: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), recipes)
		},
	}
}

func newFilterCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <id>...",
		Short: "Print the given ids that exist in the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := recipe.ParseIDs(args)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			existing, err := store.FilterIDs(cmd.Context(), ids)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), existing)
		},
	}
}

func newSearchCommand(cfg *config) *cobra.Command {
	var filterJSON string
	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Full-text search, or run a raw filter with --filter",
		Long: `Search the recipes collection.

With a text argument the full-text index is queried. With --filter the
given MongoDB Extended JSON document is forwarded to the store unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := searchFilter(args, filterJSON)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			recipes, err := store.Search(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), recipes)
		},
	}
	cmd.Flags().StringVarP(&filterJSON, "filter", "f", "", "raw filter document in MongoDB Extended JSON")
	return cmd
}

// searchFilter builds the filter for the search command from exactly one of
// a text argument or a raw Extended JSON filter.
func searchFilter(args []string, filterJSON string) (bson.M, error) {
	switch {
	case len(args) == 1 && filterJSON != "":
		return nil, errors.New("text and --filter are mutually exclusive")
	case len(args) == 1:
		return bson.M{"$text": bson.M{"$search": args[0]}}, nil
	case filterJSON != "":
		var filter bson.M
		if err := bson.UnmarshalExtJSON([]byte(filterJSON), false, &filter); err != nil {
			return nil, fmt.Errorf("parse filter: %w", err)
		}
		return filter, nil
	default:
		return nil, errors.New("search text or --filter is required")
	}
}

func newPingCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newStore(cfg, false)
			if err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			h, healthy := health.NewChecker(store).Check(cmd.Context())
			if err := writeJSON(cmd.OutOrStdout(), h); err != nil {
				return err
			}
			if !healthy {
				return errors.New("ping: store unreachable")
			}
			return nil
		},
	}
}
