package db

import (
	"context"
	"errors"
	"time"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertPoolStats updates or inserts the stats document of one pool
func (db *Database) UpsertPoolStats(ctx context.Context, doc *model.PoolStatsDocument) error {
	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"pool_value":              doc.PoolValue,
			"stablecoin_supply":       doc.StablecoinSupply,
			"collateralization_ratio": doc.CollateralizationRatio,
			"member_count":            doc.MemberCount,
			"last_updated":            time.Now().Unix(),
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.PoolStatsCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

func (db *Database) GetPoolStats(ctx context.Context, poolID string) (*model.PoolStatsDocument, error) {
	var doc model.PoolStatsDocument
	err := db.collection(model.PoolStatsCollection).FindOne(ctx, bson.M{"_id": poolID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "pool stats not found",
			}
		}
		return nil, err
	}
	return &doc, nil
}
