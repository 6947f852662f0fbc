package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type UserDocument struct {
	WalletAddress string `bson:"_id" json:"wallet_address"`
	WalletType    string `bson:"wallet_type" json:"wallet_type"`
	Username      string `bson:"username,omitempty" json:"username,omitempty"`
	Email         string `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt     int64  `bson:"created_at" json:"-"`
}

type CardDocument struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	CardID      string  `bson:"card_id" json:"card_id"`
	Edition     string  `bson:"edition,omitempty" json:"edition,omitempty"`
	UserWallet  string  `bson:"user_wallet,omitempty" json:"user_wallet,omitempty"`
	URL         string  `bson:"url,omitempty" json:"url,omitempty"`
	MarketValue float64 `bson:"market_value,omitempty" json:"market_value,omitempty"`
	InPool      bool    `bson:"in_pool" json:"in_pool"`
	CreatedAt   int64   `bson:"created_at" json:"-"`
}

// CardUpdate is a partial card update, nil fields stay untouched.
type CardUpdate struct {
	Name        *string  `json:"name,omitempty"`
	CardID      *string  `json:"card_id,omitempty"`
	Edition     *string  `json:"edition,omitempty"`
	UserWallet  *string  `json:"user_wallet,omitempty"`
	URL         *string  `json:"url,omitempty"`
	MarketValue *float64 `json:"market_value,omitempty"`
	InPool      *bool    `json:"in_pool,omitempty"`
}

func (u *CardUpdate) ToBson() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.CardID != nil {
		set["card_id"] = *u.CardID
	}
	if u.Edition != nil {
		set["edition"] = *u.Edition
	}
	if u.UserWallet != nil {
		set["user_wallet"] = *u.UserWallet
	}
	if u.URL != nil {
		set["url"] = *u.URL
	}
	if u.MarketValue != nil {
		set["market_value"] = *u.MarketValue
	}
	if u.InPool != nil {
		set["in_pool"] = *u.InPool
	}
	return set
}

func (u *CardUpdate) Apply(card *CardDocument) {
	if u.Name != nil {
		card.Name = *u.Name
	}
	if u.CardID != nil {
		card.CardID = *u.CardID
	}
	if u.Edition != nil {
		card.Edition = *u.Edition
	}
	if u.UserWallet != nil {
		card.UserWallet = *u.UserWallet
	}
	if u.URL != nil {
		card.URL = *u.URL
	}
	if u.MarketValue != nil {
		card.MarketValue = *u.MarketValue
	}
	if u.InPool != nil {
		card.InPool = *u.InPool
	}
}

type TransactionDocument struct {
	ID                  string    `bson:"_id" json:"id"`
	UserWallet          string    `bson:"user_wallet,omitempty" json:"user_wallet,omitempty"`
	TransactionType     string    `bson:"transaction_type,omitempty" json:"transaction_type,omitempty"`
	CardID              string    `bson:"card_id,omitempty" json:"card_id,omitempty"`
	UnitID              string    `bson:"unit_id,omitempty" json:"unit_id,omitempty"`
	PoolID              string    `bson:"pool_id,omitempty" json:"pool_id,omitempty"`
	Amount              float64   `bson:"amount,omitempty" json:"amount,omitempty"`
	StablecoinsInvolved float64   `bson:"stablecoins_involved,omitempty" json:"stablecoins_involved,omitempty"`
	Commission          float64   `bson:"commission" json:"commission"`
	TransactionDate     time.Time `bson:"transaction_date" json:"transaction_date"`
}

type TransactionUpdate struct {
	UserWallet          *string  `json:"user_wallet,omitempty"`
	TransactionType     *string  `json:"transaction_type,omitempty"`
	CardID              *string  `json:"card_id,omitempty"`
	Amount              *float64 `json:"amount,omitempty"`
	StablecoinsInvolved *float64 `json:"stablecoins_involved,omitempty"`
	Commission          *float64 `json:"commission,omitempty"`
}

func (u *TransactionUpdate) ToBson() bson.M {
	set := bson.M{}
	if u.UserWallet != nil {
		set["user_wallet"] = *u.UserWallet
	}
	if u.TransactionType != nil {
		set["transaction_type"] = *u.TransactionType
	}
	if u.CardID != nil {
		set["card_id"] = *u.CardID
	}
	if u.Amount != nil {
		set["amount"] = *u.Amount
	}
	if u.StablecoinsInvolved != nil {
		set["stablecoins_involved"] = *u.StablecoinsInvolved
	}
	if u.Commission != nil {
		set["commission"] = *u.Commission
	}
	return set
}

func (u *TransactionUpdate) Apply(tx *TransactionDocument) {
	if u.UserWallet != nil {
		tx.UserWallet = *u.UserWallet
	}
	if u.TransactionType != nil {
		tx.TransactionType = *u.TransactionType
	}
	if u.CardID != nil {
		tx.CardID = *u.CardID
	}
	if u.Amount != nil {
		tx.Amount = *u.Amount
	}
	if u.StablecoinsInvolved != nil {
		tx.StablecoinsInvolved = *u.StablecoinsInvolved
	}
	if u.Commission != nil {
		tx.Commission = *u.Commission
	}
}
