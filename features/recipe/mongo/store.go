package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	clientsmongo "goa.design/recipes/features/recipe/mongo/clients/mongo"
	"goa.design/recipes/recipe"
)

// Options configures the Store wrapper.
type Options struct {
	Client clientsmongo.Client
	// Catalog is the fixture loaded by Setup. Nil loads nothing: Setup then
	// only drops the collection and recreates the search index.
	Catalog []recipe.Recipe
}

// Store implements recipe.Repository by delegating to the Mongo client.
type Store struct {
	client  clientsmongo.Client
	catalog []recipe.Recipe
}

var _ recipe.Repository = (*Store)(nil)

// NewStore builds a Mongo-backed recipe store using the provided client.
func NewStore(opts Options) (*Store, error) {
	if opts.Client == nil {
		return nil, errors.New("client is required")
	}
	return &Store{client: opts.Client, catalog: opts.Catalog}, nil
}

// NewStoreFromMongo instantiates the underlying client from opts and wraps it
// in a Store seeded with catalog.
func NewStoreFromMongo(opts clientsmongo.Options, catalog []recipe.Recipe) (*Store, error) {
	client, err := clientsmongo.New(opts)
	if err != nil {
		return nil, err
	}
	return NewStore(Options{Client: client, Catalog: catalog})
}

// Name returns the health check name of the underlying client.
func (s *Store) Name() string {
	return s.client.Name()
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Recipe returns the recipe with the given id. ok is false when the recipe
// does not exist.
func (s *Store) Recipe(ctx context.Context, id int) (recipe.Recipe, bool, error) {
	return s.client.Recipe(ctx, id)
}

// RecipeByID parses raw as a recipe id before looking it up. Malformed input
// yields an error wrapping recipe.ErrInvalidID and never reaches the store.
func (s *Store) RecipeByID(ctx context.Context, raw string) (recipe.Recipe, bool, error) {
	id, err := recipe.ParseID(raw)
	if err != nil {
		return recipe.Recipe{}, false, err
	}
	return s.client.Recipe(ctx, id)
}

// Recipes returns the recipes with the given ids; an empty ids slice returns
// the whole collection.
func (s *Store) Recipes(ctx context.Context, ids []int) ([]recipe.Recipe, error) {
	return s.client.Recipes(ctx, ids)
}

// AllRecipes returns every stored recipe.
func (s *Store) AllRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return s.client.AllRecipes(ctx)
}

// FilterIDs returns the ids that exist in the store.
func (s *Store) FilterIDs(ctx context.Context, ids []int) ([]int, error) {
	return s.client.FilterIDs(ctx, ids)
}

// Search runs a store-native filter.
func (s *Store) Search(ctx context.Context, filter any) ([]recipe.Recipe, error) {
	return s.client.Search(ctx, filter)
}

// SearchText runs a full-text search for text. It requires the search index
// created by Setup or CreateSearchIndex.
func (s *Store) SearchText(ctx context.Context, text string) ([]recipe.Recipe, error) {
	return s.client.Search(ctx, bson.M{"$text": bson.M{"$search": text}})
}

// Clean drops the recipes collection.
func (s *Store) Clean(ctx context.Context) error {
	return s.client.Clean(ctx)
}

// CreateSearchIndex ensures the full-text index exists.
func (s *Store) CreateSearchIndex(ctx context.Context) error {
	return s.client.CreateSearchIndex(ctx)
}

// Setup reseeds the store with the configured catalog.
func (s *Store) Setup(ctx context.Context) error {
	return s.client.Setup(ctx, s.catalog)
}
