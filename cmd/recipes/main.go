// Command recipes administers the recipe store: it reseeds the collection
// from the seed catalog, drops it, provisions the full-text index and runs
// ad-hoc reads against it.
//
// # Configuration
//
// Environment variables (overridden by the matching flags):
//
//	RECIPES_MONGO_URI   - store endpoint (default: "mongodb://localhost:27017")
//	RECIPES_DATABASE    - database name (default: "recipes")
//	RECIPES_COLLECTION  - collection name (default: "recipes")
//	RECIPES_TIMEOUT     - per-operation timeout (default: "30s")
//	RECIPES_SEED_FILE   - YAML catalog used by setup (default: embedded catalog)
//	RECIPES_DEBUG       - enable debug logs when "true"
//
// # Example
//
//	RECIPES_MONGO_URI=mongodb://mongo:27017 recipes setup
//	recipes get 25449
//	recipes filter 25449 999999
//	recipes search Mushrooms
//	recipes search --filter '{"servings": {"$gte": 10}}'
package main

import (
	"context"
	"io"
	"os"

	"goa.design/clue/log"
)

func main() {
	ctx := baseContext(os.Stderr, log.IsTerminal())

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Error(ctx, err, log.KV{K: "msg", V: "command failed"})
		os.Exit(1)
	}
}

// baseContext returns the logging context used until the persistent flags
// are parsed and for reporting a failed command. Logs go to w so they never
// mix with results written to stdout.
func baseContext(w io.Writer, terminal bool) context.Context {
	format := log.FormatJSON
	if terminal {
		format = log.FormatTerminal
	}
	return log.Context(context.Background(), log.WithOutput(w), log.WithFormat(format))
}
