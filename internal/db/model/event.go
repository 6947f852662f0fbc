package model

import "github.com/wrapsell/wrapsell-ledger/internal/types"

type LedgerEventDocument struct {
	ID        string `bson:"_id"`
	Sequence  int64  `bson:"sequence"`
	Type      string `bson:"type"`
	UnitID    string `bson:"unit_id,omitempty"`
	PoolID    string `bson:"pool_id,omitempty"`
	Account   string `bson:"account,omitempty"`
	To        string `bson:"to,omitempty"`
	Count     uint64 `bson:"count,omitempty"`
	Amount    string `bson:"amount,omitempty"`
	Weight    string `bson:"weight,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

// LedgerEventFilter narrows ledger event queries. Zero fields match everything.
type LedgerEventFilter struct {
	Type   types.EventType
	UnitID string
	PoolID string
}

func (f LedgerEventFilter) Matches(doc *LedgerEventDocument) bool {
	if f.Type != "" && doc.Type != f.Type.String() {
		return false
	}
	if f.UnitID != "" && doc.UnitID != f.UnitID {
		return false
	}
	if f.PoolID != "" && doc.PoolID != f.PoolID {
		return false
	}
	return true
}

func FromLedgerEvent(event *types.LedgerEvent) *LedgerEventDocument {
	return &LedgerEventDocument{
		ID:        event.ID,
		Sequence:  event.Sequence,
		Type:      event.Type.String(),
		UnitID:    event.UnitID,
		PoolID:    event.PoolID,
		Account:   event.Account,
		To:        event.To,
		Count:     event.Count,
		Amount:    event.Amount,
		Weight:    event.Weight,
		Timestamp: event.Timestamp,
	}
}

func (d *LedgerEventDocument) ToLedgerEvent() *types.LedgerEvent {
	return &types.LedgerEvent{
		ID:        d.ID,
		Sequence:  d.Sequence,
		Type:      types.EventType(d.Type),
		UnitID:    d.UnitID,
		PoolID:    d.PoolID,
		Account:   d.Account,
		To:        d.To,
		Count:     d.Count,
		Amount:    d.Amount,
		Weight:    d.Weight,
		Timestamp: d.Timestamp,
	}
}
