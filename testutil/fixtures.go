package testutil

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

// RandomAccount generates a random normalized account address
func RandomAccount() ledger.Account {
	return ledger.Account(strings.ToLower(gofakeit.Regex("0x[0-9a-f]{40}")))
}

func RandomUser() *model.UserDocument {
	return &model.UserDocument{
		WalletAddress: RandomAccount().String(),
		WalletType:    gofakeit.RandomString([]string{"metamask", "coinbase", "walletconnect"}),
		Username:      gofakeit.Username(),
		Email:         gofakeit.Email(),
	}
}

func RandomCard(userWallet string) *model.CardDocument {
	return &model.CardDocument{
		ID:          uuid.NewString(),
		Name:        gofakeit.Name(),
		CardID:      gofakeit.Numerify("###-###"),
		Edition:     gofakeit.RandomString([]string{"Base Set", "Jungle", "Fossil"}),
		UserWallet:  userWallet,
		URL:         gofakeit.URL(),
		MarketValue: gofakeit.Float64Range(1, 500),
		InPool:      gofakeit.Bool(),
	}
}

func RandomTransaction(userWallet string) *model.TransactionDocument {
	return &model.TransactionDocument{
		ID:              uuid.NewString(),
		UserWallet:      userWallet,
		TransactionType: types.TransactionPurchase.String(),
		CardID:          uuid.NewString(),
		Amount:          gofakeit.Float64Range(1, 10),
		Commission:      gofakeit.Float64Range(0, 1),
		TransactionDate: gofakeit.DateRange(time.Now().Add(-24*time.Hour), time.Now()).UTC().Truncate(time.Millisecond),
	}
}

// RandomLedgerEvent builds an event committed at seq, stamped with seq as its
// unix time.
func RandomLedgerEvent(typ types.EventType, seq int64) *model.LedgerEventDocument {
	return &model.LedgerEventDocument{
		ID:        uuid.NewString(),
		Sequence:  seq,
		Type:      typ.String(),
		PoolID:    gofakeit.Word(),
		Account:   RandomAccount().String(),
		Amount:    gofakeit.Numerify("#########"),
		Timestamp: seq,
	}
}
