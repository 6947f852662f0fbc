package db

import (
	"context"
	"time"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var creationOrder = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

func (db *Database) SaveCollateralUnit(ctx context.Context, doc *model.CollateralUnitDocument) error {
	return db.upsertLedgerDocument(ctx, model.CollateralUnitsCollection, doc.ID, doc)
}

func (db *Database) GetCollateralUnits(ctx context.Context) ([]*model.CollateralUnitDocument, error) {
	return findAll[model.CollateralUnitDocument](
		ctx, db.collection(model.CollateralUnitsCollection), bson.M{}, creationOrder,
	)
}

func (db *Database) SavePoolLedger(ctx context.Context, doc *model.PoolLedgerDocument) error {
	return db.upsertLedgerDocument(ctx, model.PoolLedgersCollection, doc.ID, doc)
}

func (db *Database) GetPoolLedgers(ctx context.Context) ([]*model.PoolLedgerDocument, error) {
	return findAll[model.PoolLedgerDocument](
		ctx, db.collection(model.PoolLedgersCollection), bson.M{}, creationOrder,
	)
}

func (db *Database) upsertLedgerDocument(ctx context.Context, collection, id string, doc any) error {
	fields, err := setFields(doc)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": id}
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"created_at": time.Now().UnixNano()},
	}
	opts := options.Update().SetUpsert(true)

	_, err = db.collection(collection).UpdateOne(ctx, filter, update, opts)
	return err
}
