package db

import (
	"context"

	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPageSize = 100

type Database struct {
	dbName   string
	client   *mongo.Client
	pageSize int64
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	pageSize := cfg.MaxPaginationLimit
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Database{
		dbName:   cfg.DbName,
		client:   client,
		pageSize: pageSize,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// setFields turns a document into a $set payload without its primary key and
// creation time, both of which are fixed on insert.
func setFields(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "created_at")
	return fields, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Open connects the configured driver. The returned close function releases
// the underlying client.
func Open(ctx context.Context, cfg config.DbConfig) (DbInterface, func(context.Context) error, error) {
	if cfg.Driver == config.DbDriverMemory {
		return NewMemory(cfg.MaxPaginationLimit), func(context.Context) error { return nil }, nil
	}

	if err := model.Setup(ctx, &cfg); err != nil {
		return nil, nil, err
	}
	database, err := New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}
