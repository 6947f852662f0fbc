package db

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
)

// MemoryDatabase keeps every collection in process. It backs the "memory"
// driver and unit tests; nothing survives a restart.
type MemoryDatabase struct {
	mu       sync.RWMutex
	pageSize int64
	seq      int64

	units        map[string]*model.CollateralUnitDocument
	pools        map[string]*model.PoolLedgerDocument
	events       map[string]*model.LedgerEventDocument
	poolStats    map[string]*model.PoolStatsDocument
	users        map[string]*model.UserDocument
	cards        map[string]*model.CardDocument
	transactions map[string]*model.TransactionDocument
}

func NewMemory(pageSize int64) *MemoryDatabase {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &MemoryDatabase{
		pageSize:     pageSize,
		units:        make(map[string]*model.CollateralUnitDocument),
		pools:        make(map[string]*model.PoolLedgerDocument),
		events:       make(map[string]*model.LedgerEventDocument),
		poolStats:    make(map[string]*model.PoolStatsDocument),
		users:        make(map[string]*model.UserDocument),
		cards:        make(map[string]*model.CardDocument),
		transactions: make(map[string]*model.TransactionDocument),
	}
}

func (m *MemoryDatabase) Ping(ctx context.Context) error {
	return ctx.Err()
}

// next returns a strictly increasing creation stamp.
func (m *MemoryDatabase) next() int64 {
	m.seq++
	return m.seq
}

func (m *MemoryDatabase) SaveCollateralUnit(_ context.Context, doc *model.CollateralUnitDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := copyUnit(doc)
	stored.CreatedAt = m.next()
	if existing, ok := m.units[doc.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	m.units[doc.ID] = stored
	return nil
}

func (m *MemoryDatabase) GetCollateralUnits(_ context.Context) ([]*model.CollateralUnitDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	units := make([]*model.CollateralUnitDocument, 0, len(m.units))
	for _, u := range m.units {
		units = append(units, copyUnit(u))
	}
	sort.Slice(units, func(i, j int) bool { return units[i].CreatedAt < units[j].CreatedAt })
	return units, nil
}

func (m *MemoryDatabase) SavePoolLedger(_ context.Context, doc *model.PoolLedgerDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := copyPool(doc)
	stored.CreatedAt = m.next()
	if existing, ok := m.pools[doc.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	m.pools[doc.ID] = stored
	return nil
}

func (m *MemoryDatabase) GetPoolLedgers(_ context.Context) ([]*model.PoolLedgerDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pools := make([]*model.PoolLedgerDocument, 0, len(m.pools))
	for _, p := range m.pools {
		pools = append(pools, copyPool(p))
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].CreatedAt < pools[j].CreatedAt })
	return pools, nil
}

func (m *MemoryDatabase) SaveLedgerEvent(_ context.Context, doc *model.LedgerEventDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[doc.ID]; ok {
		return &DuplicateKeyError{
			Key:     doc.ID,
			Message: "ledger event already exists",
		}
	}
	stored := *doc
	m.events[doc.ID] = &stored
	return nil
}

func (m *MemoryDatabase) FindLedgerEvents(
	_ context.Context, filter model.LedgerEventFilter, paginationToken string,
) (*DbResultMap[*model.LedgerEventDocument], error) {
	var token *model.EventPaginationToken
	if paginationToken != "" {
		var err error
		token, err = model.DecodeEventPaginationToken(paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*model.LedgerEventDocument
	for _, e := range m.events {
		if !filter.Matches(e) {
			continue
		}
		if token != nil && !token.After(e) {
			continue
		}
		stored := *e
		events = append(events, &stored)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Sequence > events[j].Sequence })
	if int64(len(events)) > m.pageSize+1 {
		events = events[:m.pageSize+1]
	}

	return toResultMapWithPaginationToken(events, m.pageSize)
}

func (m *MemoryDatabase) GetLastLedgerEventSequence(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var last int64
	for _, e := range m.events {
		if e.Sequence > last {
			last = e.Sequence
		}
	}
	return last, nil
}

func (m *MemoryDatabase) UpsertPoolStats(_ context.Context, doc *model.PoolStatsDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *doc
	stored.LastUpdated = time.Now().Unix()
	m.poolStats[doc.ID] = &stored
	return nil
}

func (m *MemoryDatabase) GetPoolStats(_ context.Context, poolID string) (*model.PoolStatsDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats, ok := m.poolStats[poolID]
	if !ok {
		return nil, &NotFoundError{
			Key:     poolID,
			Message: "pool stats not found",
		}
	}
	stored := *stats
	return &stored, nil
}

func (m *MemoryDatabase) SaveUser(_ context.Context, doc *model.UserDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[doc.WalletAddress]; ok {
		return &DuplicateKeyError{
			Key:     doc.WalletAddress,
			Message: "user already exists",
		}
	}
	stored := *doc
	stored.CreatedAt = m.next()
	m.users[doc.WalletAddress] = &stored
	return nil
}

func (m *MemoryDatabase) GetUsers(_ context.Context) ([]*model.UserDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*model.UserDocument, 0, len(m.users))
	for _, u := range m.users {
		stored := *u
		users = append(users, &stored)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt < users[j].CreatedAt })
	return users, nil
}

func (m *MemoryDatabase) GetUserByWallet(_ context.Context, walletAddress string) (*model.UserDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[walletAddress]
	if !ok {
		return nil, &NotFoundError{
			Key:     walletAddress,
			Message: "user not found",
		}
	}
	stored := *user
	return &stored, nil
}

func (m *MemoryDatabase) SaveCard(_ context.Context, doc *model.CardDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cards[doc.ID]; ok {
		return &DuplicateKeyError{
			Key:     doc.ID,
			Message: "card already exists",
		}
	}
	stored := *doc
	stored.CreatedAt = m.next()
	m.cards[doc.ID] = &stored
	return nil
}

func (m *MemoryDatabase) GetCards(_ context.Context, filter CardFilter) ([]*model.CardDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cards := []*model.CardDocument{}
	for _, c := range m.cards {
		if filter.UserWallet != "" && c.UserWallet != filter.UserWallet {
			continue
		}
		if filter.InPool != nil && c.InPool != *filter.InPool {
			continue
		}
		stored := *c
		cards = append(cards, &stored)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt < cards[j].CreatedAt })
	return cards, nil
}

func (m *MemoryDatabase) UpdateCard(_ context.Context, id string, update *model.CardUpdate) (*model.CardDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	card, ok := m.cards[id]
	if !ok {
		return nil, &NotFoundError{
			Key:     id,
			Message: "card not found",
		}
	}
	update.Apply(card)
	stored := *card
	return &stored, nil
}

func (m *MemoryDatabase) DeleteCard(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cards[id]; !ok {
		return &NotFoundError{
			Key:     id,
			Message: "card not found",
		}
	}
	delete(m.cards, id)
	return nil
}

func (m *MemoryDatabase) SaveTransaction(_ context.Context, doc *model.TransactionDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[doc.ID]; ok {
		return &DuplicateKeyError{
			Key:     doc.ID,
			Message: "transaction already exists",
		}
	}
	if doc.TransactionDate.IsZero() {
		doc.TransactionDate = time.Now().UTC()
	}
	stored := *doc
	m.transactions[doc.ID] = &stored
	return nil
}

func (m *MemoryDatabase) GetTransactions(_ context.Context, userWallet string) ([]*model.TransactionDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txs := []*model.TransactionDocument{}
	for _, tx := range m.transactions {
		if userWallet != "" && tx.UserWallet != userWallet {
			continue
		}
		stored := *tx
		txs = append(txs, &stored)
	}
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].TransactionDate.Equal(txs[j].TransactionDate) {
			return txs[i].TransactionDate.After(txs[j].TransactionDate)
		}
		return txs[i].ID < txs[j].ID
	})
	return txs, nil
}

func (m *MemoryDatabase) UpdateTransaction(
	_ context.Context, id string, update *model.TransactionUpdate,
) (*model.TransactionDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.transactions[id]
	if !ok {
		return nil, &NotFoundError{
			Key:     id,
			Message: "transaction not found",
		}
	}
	update.Apply(tx)
	stored := *tx
	return &stored, nil
}

func (m *MemoryDatabase) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transactions[id]; !ok {
		return &NotFoundError{
			Key:     id,
			Message: "transaction not found",
		}
	}
	delete(m.transactions, id)
	return nil
}

func copyUnit(doc *model.CollateralUnitDocument) *model.CollateralUnitDocument {
	c := *doc
	c.Balances = maps.Clone(doc.Balances)
	return &c
}

func copyPool(doc *model.PoolLedgerDocument) *model.PoolLedgerDocument {
	c := *doc
	c.Members = slices.Clone(doc.Members)
	c.Balances = maps.Clone(doc.Balances)
	return &c
}
