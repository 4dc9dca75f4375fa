package mongo

import (
	"context"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	collection interface {
		FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) singleResult
		Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error)
		InsertMany(ctx context.Context, docs []any, opts ...*options.InsertManyOptions) (*mongodriver.InsertManyResult, error)
		Drop(ctx context.Context) error
		Indexes() indexView
	}

	indexView interface {
		CreateOne(ctx context.Context, model mongodriver.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
	}

	singleResult interface {
		Decode(val any) error
	}

	cursor interface {
		All(ctx context.Context, results any) error
		Close(ctx context.Context) error
	}
)

type mongoCollection struct {
	coll *mongodriver.Collection
}

func (c mongoCollection) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) singleResult {
	return c.coll.FindOne(ctx, filter, opts...)
}

func (c mongoCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error) {
	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (c mongoCollection) InsertMany(ctx context.Context, docs []any, opts ...*options.InsertManyOptions) (*mongodriver.InsertManyResult, error) {
	return c.coll.InsertMany(ctx, docs, opts...)
}

func (c mongoCollection) Drop(ctx context.Context) error {
	return c.coll.Drop(ctx)
}

func (c mongoCollection) Indexes() indexView {
	return c.coll.Indexes()
}
