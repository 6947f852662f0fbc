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

func (db *Database) SaveUser(ctx context.Context, doc *model.UserDocument) error {
	if doc.CreatedAt == 0 {
		doc.CreatedAt = time.Now().Unix()
	}
	return db.insert(ctx, model.UsersCollection, doc.WalletAddress, "user already exists", doc)
}

func (db *Database) GetUsers(ctx context.Context) ([]*model.UserDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findAll[model.UserDocument](ctx, db.collection(model.UsersCollection), bson.M{}, opts)
}

func (db *Database) GetUserByWallet(ctx context.Context, walletAddress string) (*model.UserDocument, error) {
	var user model.UserDocument
	err := db.collection(model.UsersCollection).FindOne(ctx, bson.M{"_id": walletAddress}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     walletAddress,
				Message: "user not found",
			}
		}
		return nil, err
	}
	return &user, nil
}

func (db *Database) SaveCard(ctx context.Context, doc *model.CardDocument) error {
	if doc.CreatedAt == 0 {
		doc.CreatedAt = time.Now().Unix()
	}
	return db.insert(ctx, model.CardsCollection, doc.ID, "card already exists", doc)
}

func (db *Database) GetCards(ctx context.Context, filter CardFilter) ([]*model.CardDocument, error) {
	query := bson.M{}
	if filter.UserWallet != "" {
		query["user_wallet"] = filter.UserWallet
	}
	if filter.InPool != nil {
		query["in_pool"] = *filter.InPool
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	return findAll[model.CardDocument](ctx, db.collection(model.CardsCollection), query, opts)
}

func (db *Database) UpdateCard(ctx context.Context, id string, update *model.CardUpdate) (*model.CardDocument, error) {
	var card model.CardDocument
	if err := db.findOneAndSet(ctx, model.CardsCollection, id, update.ToBson(), "card not found", &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (db *Database) DeleteCard(ctx context.Context, id string) error {
	return db.deleteByID(ctx, model.CardsCollection, id, "card not found")
}

func (db *Database) SaveTransaction(ctx context.Context, doc *model.TransactionDocument) error {
	if doc.TransactionDate.IsZero() {
		doc.TransactionDate = time.Now().UTC()
	}
	return db.insert(ctx, model.TransactionsCollection, doc.ID, "transaction already exists", doc)
}

func (db *Database) GetTransactions(ctx context.Context, userWallet string) ([]*model.TransactionDocument, error) {
	query := bson.M{}
	if userWallet != "" {
		query["user_wallet"] = userWallet
	}
	opts := options.Find().SetSort(bson.D{{Key: "transaction_date", Value: -1}, {Key: "_id", Value: 1}})

	return findAll[model.TransactionDocument](ctx, db.collection(model.TransactionsCollection), query, opts)
}

func (db *Database) UpdateTransaction(
	ctx context.Context, id string, update *model.TransactionUpdate,
) (*model.TransactionDocument, error) {
	var tx model.TransactionDocument
	if err := db.findOneAndSet(ctx, model.TransactionsCollection, id, update.ToBson(), "transaction not found", &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (db *Database) DeleteTransaction(ctx context.Context, id string) error {
	return db.deleteByID(ctx, model.TransactionsCollection, id, "transaction not found")
}

func (db *Database) insert(ctx context.Context, collection, id, duplicateMsg string, doc any) error {
	_, err := db.collection(collection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     id,
						Message: duplicateMsg,
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) findOneAndSet(
	ctx context.Context, collection, id string, set bson.M, notFoundMsg string, result any,
) error {
	var res *mongo.SingleResult
	if len(set) == 0 {
		res = db.collection(collection).FindOne(ctx, bson.M{"_id": id})
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		res = db.collection(collection).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)
	}

	if err := res.Decode(result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     id,
				Message: notFoundMsg,
			}
		}
		return err
	}
	return nil
}

func (db *Database) deleteByID(ctx context.Context, collection, id, notFoundMsg string) error {
	res, err := db.collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: notFoundMsg,
		}
	}
	return nil
}
