package mongo

import (
	"context"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type (
	// dialer opens the connection used by a single operation.
	dialer interface {
		Dial(ctx context.Context) (connection, error)
	}

	// connection is owned by exactly one operation and closed exactly once.
	// Collection handles obtained from it must not outlive it.
	connection interface {
		Collection() collection
		Ping(ctx context.Context) error
		Close(ctx context.Context) error
	}
)

// uriDialer connects a dedicated driver client for every operation.
type uriDialer struct {
	uri        string
	database   string
	collection string
}

// Dial connects and pings the primary so that endpoint failures surface
// before any query is issued.
func (d uriDialer) Dial(ctx context.Context) (connection, error) {
	mc, err := mongodriver.Connect(ctx, options.Client().ApplyURI(d.uri))
	if err != nil {
		return nil, err
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return newMongoConnection(mc, d.database, d.collection, true), nil
}

// sharedDialer hands out connections backed by a long-lived client owned by
// the caller. Closing them releases the handle without disconnecting.
type sharedDialer struct {
	client     *mongodriver.Client
	database   string
	collection string
}

func (d sharedDialer) Dial(context.Context) (connection, error) {
	return newMongoConnection(d.client, d.database, d.collection, false), nil
}

type mongoConnection struct {
	client *mongodriver.Client
	coll   mongoCollection
	owned  bool
}

func newMongoConnection(mc *mongodriver.Client, database, coll string, owned bool) *mongoConnection {
	return &mongoConnection{
		client: mc,
		coll:   mongoCollection{coll: mc.Database(database).Collection(coll)},
		owned:  owned,
	}
}

func (c *mongoConnection) Collection() collection {
	return c.coll
}

func (c *mongoConnection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *mongoConnection) Close(ctx context.Context) error {
	if !c.owned {
		return nil
	}
	return c.client.Disconnect(ctx)
}
