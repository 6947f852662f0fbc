package db

import (
	"context"
	"errors"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveLedgerEvent(ctx context.Context, doc *model.LedgerEventDocument) error {
	_, err := db.collection(model.LedgerEventsCollection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     doc.ID,
						Message: "ledger event already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) FindLedgerEvents(
	ctx context.Context, filter model.LedgerEventFilter, paginationToken string,
) (*DbResultMap[*model.LedgerEventDocument], error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type.String()
	}
	if filter.UnitID != "" {
		query["unit_id"] = filter.UnitID
	}
	if filter.PoolID != "" {
		query["pool_id"] = filter.PoolID
	}

	if paginationToken != "" {
		token, err := model.DecodeEventPaginationToken(paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		query["sequence"] = bson.M{"$lt": token.Sequence}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "sequence", Value: -1}}).
		SetLimit(db.pageSize + 1)

	events, err := findAll[model.LedgerEventDocument](ctx, db.collection(model.LedgerEventsCollection), query, opts)
	if err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(events, db.pageSize)
}

// GetLastLedgerEventSequence returns the highest stored event sequence, 0 when
// no events exist.
func (db *Database) GetLastLedgerEventSequence(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "sequence", Value: -1}}).
		SetProjection(bson.M{"sequence": 1})

	var doc model.LedgerEventDocument
	err := db.collection(model.LedgerEventsCollection).FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return doc.Sequence, nil
}

// toResultMapWithPaginationToken cuts a page fetched with one extra element and
// emits a token only when more results exist.
func toResultMapWithPaginationToken(
	events []*model.LedgerEventDocument, pageSize int64,
) (*DbResultMap[*model.LedgerEventDocument], error) {
	if int64(len(events)) <= pageSize {
		if events == nil {
			events = []*model.LedgerEventDocument{}
		}
		return &DbResultMap[*model.LedgerEventDocument]{Data: events}, nil
	}

	page := events[:pageSize]
	token, err := model.BuildEventPaginationToken(page[len(page)-1])
	if err != nil {
		return nil, err
	}
	return &DbResultMap[*model.LedgerEventDocument]{
		Data:            page,
		PaginationToken: token,
	}, nil
}
