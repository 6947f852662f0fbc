package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventUnitCreated       EventType = "UNIT_CREATED"
	EventCardsDeposited    EventType = "CARDS_DEPOSITED"
	EventPoolCreated       EventType = "POOL_CREATED"
	EventMemberAdded       EventType = "MEMBER_ADDED"
	EventStablecoinMinted  EventType = "STABLECOIN_MINTED"
	EventTokensTransferred EventType = "TOKENS_TRANSFERRED"
)

func (e EventType) IsValid() bool {
	for _, t := range AllEventTypes() {
		if e == t {
			return true
		}
	}
	return false
}

// AllEventTypes lists every ledger event type, used for queue bindings.
func AllEventTypes() []EventType {
	return []EventType{
		EventUnitCreated,
		EventCardsDeposited,
		EventPoolCreated,
		EventMemberAdded,
		EventStablecoinMinted,
		EventTokensTransferred,
	}
}

// LedgerEvent is a committed ledger state transition. Amount fields are
// decimal strings of base units. Sequence increases with every commit.
type LedgerEvent struct {
	ID        string    `json:"id"`
	Sequence  int64     `json:"sequence"`
	Type      EventType `json:"type"`
	UnitID    string    `json:"unit_id,omitempty"`
	PoolID    string    `json:"pool_id,omitempty"`
	Account   string    `json:"account,omitempty"`
	To        string    `json:"to,omitempty"`
	Count     uint64    `json:"count,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Weight    string    `json:"weight,omitempty"`
	Timestamp int64     `json:"timestamp"`
}
