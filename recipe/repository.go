package recipe

import "context"

// Repository brokers access to a store of recipe documents. Each call is
// self-contained: implementations acquire and release their own store
// connection and fully materialize results before returning.
type Repository interface {
	// Recipe returns the recipe with the given id. The boolean is false when
	// no such recipe exists; that case is not an error.
	Recipe(ctx context.Context, id int) (Recipe, bool, error)

	// Recipes returns the recipes whose ids are listed. An empty ids slice
	// returns every recipe in the store.
	Recipes(ctx context.Context, ids []int) ([]Recipe, error)

	// AllRecipes returns every recipe in the store.
	AllRecipes(ctx context.Context) ([]Recipe, error)

	// FilterIDs returns the subset of ids that exist in the store.
	FilterIDs(ctx context.Context, ids []int) ([]int, error)

	// Search returns the recipes matching a store-native filter document.
	Search(ctx context.Context, filter any) ([]Recipe, error)

	// Clean drops every recipe along with the collection indexes.
	Clean(ctx context.Context) error

	// CreateSearchIndex ensures the full-text index backing text searches
	// exists. It is safe to call repeatedly.
	CreateSearchIndex(ctx context.Context) error

	// Setup replaces the store contents with the seed catalog and recreates
	// the search index.
	Setup(ctx context.Context) error
}
