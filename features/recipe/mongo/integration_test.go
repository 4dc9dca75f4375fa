package mongo

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	clientsmongo "goa.design/recipes/features/recipe/mongo/clients/mongo"
	"goa.design/recipes/recipe"
	"goa.design/recipes/recipe/seed"
)

var (
	mongoOnce      sync.Once
	mongoURI       string
	mongoContainer testcontainers.Container
	skipMongoTests bool
)

func TestMain(m *testing.M) {
	code := m.Run()
	if mongoContainer != nil {
		_ = mongoContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupMongoDB() {
	ctx := context.Background()

	var containerErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				containerErr = fmt.Errorf("docker not available: %v", r)
			}
		}()
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections"),
			Tmpfs:        map[string]string{"/data/db": "rw"},
		}
		mongoContainer, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	}()
	if containerErr != nil {
		fmt.Printf("Docker not available, MongoDB tests will be skipped: %v\n", containerErr)
		skipMongoTests = true
		return
	}

	host, err := mongoContainer.Host(ctx)
	if err != nil {
		fmt.Printf("Failed to get container host: %v\n", err)
		skipMongoTests = true
		return
	}
	port, err := mongoContainer.MappedPort(ctx, "27017")
	if err != nil {
		fmt.Printf("Failed to get container port: %v\n", err)
		skipMongoTests = true
		return
	}
	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func getMongoStore(t *testing.T) *Store {
	t.Helper()
	mongoOnce.Do(setupMongoDB)
	if skipMongoTests {
		t.Skip("Docker not available, skipping MongoDB test")
	}
	store, err := NewStoreFromMongo(clientsmongo.Options{
		URI:        mongoURI,
		Database:   "recipes_test",
		Collection: strings.ReplaceAll(t.Name(), "/", "_"),
		Timeout:    30 * time.Second,
	}, seed.MustDefault())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Clean(context.Background()) })
	return store
}

func TestMongoSetupScenario(t *testing.T) {
	store := getMongoStore(t)
	ctx := context.Background()

	require.NoError(t, store.Setup(ctx))

	r, ok, err := store.Recipe(ctx, 25449)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Deb's Spicy Summer Evening Mushrooms", r.Title)

	_, ok, err = store.Recipe(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := store.FilterIDs(ctx, []int{25449, 999999})
	require.NoError(t, err)
	assert.Equal(t, []int{25449}, ids)

	found, err := store.SearchText(ctx, "Mushrooms")
	require.NoError(t, err)
	assert.Contains(t, recipe.IDs(found), 25449)
}

func TestMongoSetupLoadsExactCatalog(t *testing.T) {
	store := getMongoStore(t)
	ctx := context.Background()
	catalog := seed.MustDefault()

	// Running twice must not duplicate documents.
	require.NoError(t, store.Setup(ctx))
	require.NoError(t, store.Setup(ctx))

	all, err := store.AllRecipes(ctx)
	require.NoError(t, err)
	got, want := recipe.IDs(all), recipe.IDs(catalog)
	sort.Ints(got)
	sort.Ints(want)
	assert.Equal(t, want, got)

	viaEmpty, err := store.Recipes(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, all, viaEmpty)

	for _, want := range catalog {
		got, ok, err := store.Recipe(ctx, want.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)

		term := longestWord(want.Title)
		found, err := store.SearchText(ctx, term)
		require.NoError(t, err)
		assert.Contains(t, recipe.IDs(found), want.ID, "search %q", term)
	}
}

func TestMongoCleanEmptiesStore(t *testing.T) {
	store := getMongoStore(t)
	ctx := context.Background()
	require.NoError(t, store.Setup(ctx))

	require.NoError(t, store.Clean(ctx))
	require.NoError(t, store.Clean(ctx))

	all, err := store.AllRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	found, err := store.SearchText(ctx, "Mushrooms")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMongoCreateSearchIndexIsIdempotent(t *testing.T) {
	store := getMongoStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateSearchIndex(ctx))
	require.NoError(t, store.CreateSearchIndex(ctx))
	require.NoError(t, store.Ping(ctx))
}

func TestMongoUnreachableEndpoint(t *testing.T) {
	mongoOnce.Do(setupMongoDB)
	if skipMongoTests {
		t.Skip("Docker not available, skipping MongoDB test")
	}
	store, err := NewStoreFromMongo(clientsmongo.Options{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		Database: "recipes_test",
	}, nil)
	require.NoError(t, err)

	_, _, err = store.Recipe(context.Background(), 25449)
	require.Error(t, err)
}

func longestWord(title string) string {
	var best string
	for _, w := range strings.Fields(title) {
		if len(w) > len(best) {
			best = w
		}
	}
	return best
}
