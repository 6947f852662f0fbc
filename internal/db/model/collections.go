package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollateralUnitsCollection = "collateral_units"
	PoolLedgersCollection     = "pool_ledgers"
	LedgerEventsCollection    = "ledger_events"
	PoolStatsCollection       = "pool_stats"
	UsersCollection           = "users"
	CardsCollection           = "cards"
	TransactionsCollection    = "transactions"
)

type index struct {
	Indexes map[string]int
	Unique  bool
}

var collections = map[string][]index{
	CollateralUnitsCollection: {{Indexes: map[string]int{"created_at": 1}}},
	PoolLedgersCollection:     {{Indexes: map[string]int{"created_at": 1}}},
	LedgerEventsCollection: {
		{Indexes: map[string]int{"sequence": -1}},
		{Indexes: map[string]int{"type": 1}},
		{Indexes: map[string]int{"pool_id": 1}},
		{Indexes: map[string]int{"unit_id": 1}},
	},
	PoolStatsCollection: {{Indexes: map[string]int{}}},
	UsersCollection:     {{Indexes: map[string]int{}}},
	CardsCollection: {
		{Indexes: map[string]int{"user_wallet": 1}},
		{Indexes: map[string]int{"in_pool": 1}},
	},
	TransactionsCollection: {
		{Indexes: map[string]int{"user_wallet": 1}},
		{Indexes: map[string]int{"transaction_date": -1}},
	},
}

// Setup creates the collections and their indexes. It is safe to run on an
// already initialized database.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)
	for collection, indexes := range collections {
		if err := createCollection(ctx, database, collection); err != nil {
			return err
		}
		for _, idx := range indexes {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	err := database.CreateCollection(ctx, collectionName)
	if err != nil {
		var cmdErr mongo.CommandError
		// NamespaceExists
		if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
			log.Debug().Str("collection", collectionName).Msg("Collection already exists")
			return nil
		}
		return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
	}

	log.Info().Str("collection", collectionName).Msg("Collection created successfully")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Indexes) == 0 {
		return nil
	}

	keys := bson.D{}
	for field, order := range idx.Indexes {
		keys = append(keys, bson.E{Key: field, Value: order})
	}

	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Debug().Str("collection", collectionName).Interface("keys", keys).Msg("Index created")
	return nil
}
