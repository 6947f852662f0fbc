package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
)

// CollateralUnitDocument is the stored form of a collateral unit. Amounts are
// decimal strings of base units.
type CollateralUnitDocument struct {
	ID           string            `bson:"_id"` // Primary key
	Name         string            `bson:"name"`
	Symbol       string            `bson:"symbol"`
	CardID       uint64            `bson:"card_id"`
	CardName     string            `bson:"card_name"`
	Edition      string            `bson:"edition"`
	UnitPrice    string            `bson:"unit_price"`
	TotalUnits   uint64            `bson:"total_units"`
	TokensIssued string            `bson:"tokens_issued"`
	Balances     map[string]string `bson:"balances"`
	// CreatedAt is set once on insert and orders units on bootstrap
	CreatedAt int64 `bson:"created_at,omitempty"`
}

type PoolMemberDocument struct {
	UnitID string `bson:"unit_id"`
	Weight string `bson:"weight"`
}

type PoolLedgerDocument struct {
	ID               string               `bson:"_id"` // Primary key
	Name             string               `bson:"name"`
	Symbol           string               `bson:"symbol"`
	TcgType          string               `bson:"tcg_type"`
	Edition          string               `bson:"edition"`
	Description      string               `bson:"description"`
	Owner            string               `bson:"owner"`
	Members          []PoolMemberDocument `bson:"members"`
	StablecoinSupply string               `bson:"stablecoin_supply"`
	Balances         map[string]string    `bson:"balances"`
	CreatedAt        int64                `bson:"created_at,omitempty"`
}

func FromUnitSnapshot(snap ledger.UnitSnapshot) *CollateralUnitDocument {
	return &CollateralUnitDocument{
		ID:           snap.ID,
		Name:         snap.Name,
		Symbol:       snap.Symbol,
		CardID:       snap.CardID,
		CardName:     snap.CardName,
		Edition:      snap.Edition,
		UnitPrice:    snap.UnitPrice.String(),
		TotalUnits:   snap.TotalUnits,
		TokensIssued: snap.TokensIssued.String(),
		Balances:     balancesToDocument(snap.Balances),
	}
}

func (d *CollateralUnitDocument) ToSnapshot() (ledger.UnitSnapshot, error) {
	unitPrice, err := parseInt(d.UnitPrice, "unit_price")
	if err != nil {
		return ledger.UnitSnapshot{}, fmt.Errorf("unit %s: %w", d.ID, err)
	}
	tokensIssued, err := parseInt(d.TokensIssued, "tokens_issued")
	if err != nil {
		return ledger.UnitSnapshot{}, fmt.Errorf("unit %s: %w", d.ID, err)
	}
	balances, err := balancesFromDocument(d.Balances)
	if err != nil {
		return ledger.UnitSnapshot{}, fmt.Errorf("unit %s: %w", d.ID, err)
	}

	return ledger.UnitSnapshot{
		ID:           d.ID,
		Name:         d.Name,
		Symbol:       d.Symbol,
		CardID:       d.CardID,
		CardName:     d.CardName,
		Edition:      d.Edition,
		UnitPrice:    unitPrice,
		TotalUnits:   d.TotalUnits,
		TokensIssued: tokensIssued,
		Balances:     balances,
	}, nil
}

func FromPoolSnapshot(snap ledger.PoolSnapshot) *PoolLedgerDocument {
	members := make([]PoolMemberDocument, 0, len(snap.Members))
	for _, m := range snap.Members {
		members = append(members, PoolMemberDocument{
			UnitID: m.UnitID,
			Weight: m.Weight.String(),
		})
	}

	return &PoolLedgerDocument{
		ID:               snap.ID,
		Name:             snap.Name,
		Symbol:           snap.Symbol,
		TcgType:          snap.TcgType,
		Edition:          snap.Edition,
		Description:      snap.Description,
		Owner:            snap.Owner.String(),
		Members:          members,
		StablecoinSupply: snap.StablecoinSupply.String(),
		Balances:         balancesToDocument(snap.Balances),
	}
}

func (d *PoolLedgerDocument) ToSnapshot() (ledger.PoolSnapshot, error) {
	members := make([]ledger.Member, 0, len(d.Members))
	for _, m := range d.Members {
		weight, err := sdkmath.LegacyNewDecFromStr(m.Weight)
		if err != nil {
			return ledger.PoolSnapshot{}, fmt.Errorf("pool %s: invalid weight of %s: %w", d.ID, m.UnitID, err)
		}
		members = append(members, ledger.Member{UnitID: m.UnitID, Weight: weight})
	}
	supply, err := parseInt(d.StablecoinSupply, "stablecoin_supply")
	if err != nil {
		return ledger.PoolSnapshot{}, fmt.Errorf("pool %s: %w", d.ID, err)
	}
	balances, err := balancesFromDocument(d.Balances)
	if err != nil {
		return ledger.PoolSnapshot{}, fmt.Errorf("pool %s: %w", d.ID, err)
	}

	return ledger.PoolSnapshot{
		ID:               d.ID,
		Name:             d.Name,
		Symbol:           d.Symbol,
		TcgType:          d.TcgType,
		Edition:          d.Edition,
		Description:      d.Description,
		Owner:            ledger.Account(d.Owner),
		Members:          members,
		StablecoinSupply: supply,
		Balances:         balances,
	}, nil
}

func parseInt(s, field string) (sdkmath.Int, error) {
	if s == "" {
		return sdkmath.ZeroInt(), nil
	}
	i, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid %s %q", field, s)
	}
	return i, nil
}

func balancesToDocument(balances map[ledger.Account]sdkmath.Int) map[string]string {
	doc := make(map[string]string, len(balances))
	for account, balance := range balances {
		doc[account.String()] = balance.String()
	}
	return doc
}

func balancesFromDocument(doc map[string]string) (map[ledger.Account]sdkmath.Int, error) {
	balances := make(map[ledger.Account]sdkmath.Int, len(doc))
	for account, s := range doc {
		balance, err := parseInt(s, "balance of "+account)
		if err != nil {
			return nil, err
		}
		balances[ledger.Account(account)] = balance
	}
	return balances, nil
}
