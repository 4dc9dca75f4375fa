// Package mongo implements the low-level MongoDB client used by the recipe
// store. Every operation runs as its own pipeline: acquire a connection,
// obtain the recipes collection, run the store calls in order, release the
// connection and return the fully materialized result.
package mongo

//go:generate cmg gen .

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"

	"goa.design/clue/health"

	"goa.design/recipes/recipe"
	"goa.design/recipes/telemetry"
)

const (
	defaultCollection   = "recipes"
	defaultCloseTimeout = 10 * time.Second
	clientName          = "recipes-mongo"

	// SearchIndexName names the full-text index created over every field.
	SearchIndexName = "recipes_text"

	metricOperations = "recipes.operations"
	metricDuration   = "recipes.operation.duration"
)

// Client exposes Mongo-backed operations on the recipes collection.
type Client interface {
	health.Pinger

	Recipe(ctx context.Context, id int) (recipe.Recipe, bool, error)
	Recipes(ctx context.Context, ids []int) ([]recipe.Recipe, error)
	AllRecipes(ctx context.Context) ([]recipe.Recipe, error)
	FilterIDs(ctx context.Context, ids []int) ([]int, error)
	Search(ctx context.Context, filter any) ([]recipe.Recipe, error)
	Clean(ctx context.Context) error
	CreateSearchIndex(ctx context.Context) error
	Setup(ctx context.Context, catalog []recipe.Recipe) error
}

// Options configures the Mongo client implementation.
type Options struct {
	// URI is the store endpoint. A dedicated connection is opened and closed
	// for every operation. Required unless Client is set.
	URI string
	// Client, when set, is reused by every operation instead of dialing URI.
	// The caller owns it and must disconnect it.
	Client *mongodriver.Client
	// Database is the database holding the recipes collection.
	Database string
	// Collection defaults to "recipes".
	Collection string
	// Timeout bounds each operation. Zero leaves the deadline to the caller's
	// context.
	Timeout time.Duration

	Logger  telemetry.Logger
	Metrics telemetry.Metrics
	Tracer  telemetry.Tracer
}

type client struct {
	dialer  dialer
	timeout time.Duration
	logger  telemetry.Logger
	metrics telemetry.Metrics
	tracer  telemetry.Tracer
}

// New returns a Client configured by opts. It does not contact the store.
func New(opts Options) (Client, error) {
	if opts.Client == nil && opts.URI == "" {
		return nil, errors.New("mongo uri or client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("database name is required")
	}
	coll := opts.Collection
	if coll == "" {
		coll = defaultCollection
	}
	var d dialer
	if opts.Client != nil {
		d = sharedDialer{client: opts.Client, database: opts.Database, collection: coll}
	} else {
		d = uriDialer{uri: opts.URI, database: opts.Database, collection: coll}
	}
	return newClientWithDialer(d, opts)
}

func newClientWithDialer(d dialer, opts Options) (*client, error) {
	if d == nil {
		return nil, errors.New("dialer is required")
	}
	c := &client{
		dialer:  d,
		timeout: opts.Timeout,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
	}
	if c.logger == nil {
		c.logger = telemetry.NewNoopLogger()
	}
	if c.metrics == nil {
		c.metrics = telemetry.NewNoopMetrics()
	}
	if c.tracer == nil {
		c.tracer = telemetry.NewNoopTracer()
	}
	return c, nil
}

func (c *client) Name() string {
	return clientName
}

func (c *client) Ping(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.run(ctx, "ping", func(ctx context.Context, conn connection) error {
		return conn.Ping(ctx)
	})
}

func (c *client) Recipe(ctx context.Context, id int) (recipe.Recipe, bool, error) {
	var (
		doc   recipeDocument
		found bool
	)
	err := c.run(ctx, "get", func(ctx context.Context, conn connection) error {
		err := conn.Collection().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return recipe.Recipe{}, false, err
	}
	return doc.toRecipe(), true, nil
}

// Recipes returns the recipes whose id is in ids, in store order. An empty
// ids slice selects the whole collection.
func (c *client) Recipes(ctx context.Context, ids []int) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return c.find(ctx, "get_all", bson.M{})
	}
	return c.find(ctx, "get_many", bson.M{"id": bson.M{"$in": ids}})
}

func (c *client) AllRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return c.find(ctx, "get_all", bson.M{})
}

// FilterIDs returns the members of ids present in the store, deduplicated and
// in input order.
func (c *client) FilterIDs(ctx context.Context, ids []int) ([]int, error) {
	if ids == nil {
		ids = []int{}
	}
	var docs []idDocument
	err := c.run(ctx, "filter_ids", func(ctx context.Context, conn connection) error {
		opts := options.Find().SetProjection(bson.M{"id": 1, "_id": 0})
		return findAll(ctx, conn.Collection(), bson.M{"id": bson.M{"$in": ids}}, &docs, opts)
	})
	if err != nil {
		return nil, err
	}
	present := make(map[int]struct{}, len(docs))
	for _, d := range docs {
		present[d.ID] = struct{}{}
	}
	result := make([]int, 0, len(present))
	for _, id := range ids {
		if _, ok := present[id]; ok {
			result = append(result, id)
			delete(present, id)
		}
	}
	return result, nil
}

// Search forwards filter to the store unchanged, e.g.
// bson.M{"$text": bson.M{"$search": "mushrooms"}}.
func (c *client) Search(ctx context.Context, filter any) ([]recipe.Recipe, error) {
	if filter == nil {
		return nil, errors.New("search filter is required")
	}
	return c.find(ctx, "search", filter)
}

// Clean drops the recipes collection and its indexes.
func (c *client) Clean(ctx context.Context) error {
	return c.run(ctx, "clean", func(ctx context.Context, conn connection) error {
		return conn.Collection().Drop(ctx)
	})
}

func (c *client) CreateSearchIndex(ctx context.Context) error {
	return c.run(ctx, "create_search_index", func(ctx context.Context, conn connection) error {
		return ensureSearchIndex(ctx, conn.Collection())
	})
}

// Setup drops the collection, inserts catalog and recreates the search index
// over a single connection. The sequence is not atomic: concurrent readers
// may observe an empty or partially loaded collection.
func (c *client) Setup(ctx context.Context, catalog []recipe.Recipe) error {
	return c.run(ctx, "setup", func(ctx context.Context, conn connection) error {
		coll := conn.Collection()
		if err := coll.Drop(ctx); err != nil {
			return err
		}
		if len(catalog) > 0 {
			docs := make([]any, len(catalog))
			for i, r := range catalog {
				docs[i] = toDocument(r)
			}
			if _, err := coll.InsertMany(ctx, docs); err != nil {
				return err
			}
		}
		if err := ensureSearchIndex(ctx, coll); err != nil {
			return err
		}
		c.logger.Info(ctx, "recipes seeded", "count", len(catalog))
		return nil
	})
}

func (c *client) find(ctx context.Context, op string, filter any) ([]recipe.Recipe, error) {
	var docs []recipeDocument
	err := c.run(ctx, op, func(ctx context.Context, conn connection) error {
		return findAll(ctx, conn.Collection(), filter, &docs)
	})
	if err != nil {
		return nil, err
	}
	return fromDocuments(docs), nil
}

// run executes fn against a freshly acquired connection and releases the
// connection on every exit path. Errors from dialing or from fn are returned
// unchanged.
func (c *client) run(ctx context.Context, op string, fn func(context.Context, connection) error) (err error) {
	start := time.Now()
	opID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "recipes."+op)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		c.metrics.IncCounter(metricOperations, 1, "op", op, "status", status)
		c.metrics.RecordTimer(metricDuration, time.Since(start), "op", op, "status", status)
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	conn, err := c.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	span.AddEvent("connection opened", "op_id", opID)
	c.logger.Debug(ctx, "recipes connection opened", "op", op, "op_id", opID)
	defer c.release(ctx, conn, op, opID, start)

	return fn(ctx, conn)
}

// release closes conn. A close failure is logged rather than returned: the
// operation result is already materialized.
func (c *client) release(ctx context.Context, conn connection, op, opID string, start time.Time) {
	timeout := c.timeout
	if timeout <= 0 {
		timeout = defaultCloseTimeout
	}
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := conn.Close(closeCtx); err != nil {
		c.logger.Warn(ctx, "recipes connection close failed", "op", op, "op_id", opID, "err", err)
		return
	}
	c.logger.Debug(ctx, "recipes connection closed", "op", op, "op_id", opID, "duration", time.Since(start).String())
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func findAll(ctx context.Context, coll collection, filter any, results any, opts ...*options.FindOptions) error {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = cur.Close(ctx) }()
	return cur.All(ctx, results)
}

// ensureSearchIndex creates the wildcard text index. Creating an index that
// already exists with the same definition is a no-op in the store.
func ensureSearchIndex(ctx context.Context, coll collection) error {
	index := mongodriver.IndexModel{
		Keys:    bson.D{{Key: "$**", Value: "text"}},
		Options: options.Index().SetName(SearchIndexName),
	}
	_, err := coll.Indexes().CreateOne(ctx, index)
	return err
}
