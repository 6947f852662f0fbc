package ledger

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// State is the ledger arena: every collateral unit and pool known to one
// ledger instance. It is not safe for concurrent use; callers serialize access.
type State struct {
	units     map[string]*CollateralUnit
	unitOrder []string
	pools     map[string]*PoolLedger
	poolOrder []string
}

func NewState() *State {
	return &State{
		units: make(map[string]*CollateralUnit),
		pools: make(map[string]*PoolLedger),
	}
}

func (s *State) CreateUnit(params UnitParams) (*CollateralUnit, error) {
	if _, ok := s.units[params.ID]; ok {
		return nil, fmt.Errorf("unit %s: %w", params.ID, ErrAlreadyExists)
	}

	unit, err := NewCollateralUnit(params)
	if err != nil {
		return nil, err
	}
	s.addUnit(unit)

	return unit, nil
}

func (s *State) CreatePool(params PoolParams) (*PoolLedger, error) {
	if _, ok := s.pools[params.ID]; ok {
		return nil, fmt.Errorf("pool %s: %w", params.ID, ErrAlreadyExists)
	}

	pool, err := NewPoolLedger(params)
	if err != nil {
		return nil, err
	}
	s.addPool(pool)

	return pool, nil
}

func (s *State) Unit(id string) (*CollateralUnit, error) {
	unit, ok := s.units[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
	}
	return unit, nil
}

func (s *State) Pool(id string) (*PoolLedger, error) {
	pool, ok := s.pools[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	return pool, nil
}

// DepositCards deposits into a unit and checks that every pool holding the
// unit can still value its collateral. Nothing changes on error.
func (s *State) DepositCards(
	unitID string, caller Account, count uint64, payment sdkmath.Int,
) (*CollateralUnit, sdkmath.Int, error) {
	unit, err := s.Unit(unitID)
	if err != nil {
		return nil, sdkmath.Int{}, err
	}

	totalUnits, tokensIssued := unit.totalUnits, unit.tokensIssued
	balance, hadBalance := unit.balances[caller]

	minted, err := unit.DepositCards(caller, count, payment)
	if err != nil {
		return nil, sdkmath.Int{}, err
	}
	for _, pool := range s.Pools() {
		if !pool.HasMember(unitID) {
			continue
		}
		if _, err := pool.GetTotalCollateralValue(); err != nil {
			unit.totalUnits, unit.tokensIssued = totalUnits, tokensIssued
			if hadBalance {
				unit.balances[caller] = balance
			} else {
				delete(unit.balances, caller)
			}
			return nil, sdkmath.Int{}, err
		}
	}

	return unit, minted, nil
}

// Units returns units in creation order.
func (s *State) Units() []*CollateralUnit {
	units := make([]*CollateralUnit, 0, len(s.unitOrder))
	for _, id := range s.unitOrder {
		units = append(units, s.units[id])
	}
	return units
}

// Pools returns pools in creation order.
func (s *State) Pools() []*PoolLedger {
	pools := make([]*PoolLedger, 0, len(s.poolOrder))
	for _, id := range s.poolOrder {
		pools = append(pools, s.pools[id])
	}
	return pools
}

// Clone deep copies the state. Pool members of the copy point at the copied units.
func (s *State) Clone() *State {
	c := NewState()
	for _, id := range s.unitOrder {
		c.addUnit(s.units[id].clone())
	}
	for _, id := range s.poolOrder {
		c.addPool(s.pools[id].clone(c.units))
	}
	return c
}

func (s *State) addUnit(unit *CollateralUnit) {
	s.units[unit.id] = unit
	s.unitOrder = append(s.unitOrder, unit.id)
}

func (s *State) addPool(pool *PoolLedger) {
	s.pools[pool.id] = pool
	s.poolOrder = append(s.poolOrder, pool.id)
}

// UnitSnapshot is the persisted form of a CollateralUnit.
type UnitSnapshot struct {
	ID           string
	Name         string
	Symbol       string
	CardID       uint64
	CardName     string
	Edition      string
	UnitPrice    sdkmath.Int
	TotalUnits   uint64
	TokensIssued sdkmath.Int
	Balances     map[Account]sdkmath.Int
}

// PoolSnapshot is the persisted form of a PoolLedger.
type PoolSnapshot struct {
	ID               string
	Name             string
	Symbol           string
	TcgType          string
	Edition          string
	Description      string
	Owner            Account
	Members          []Member
	StablecoinSupply sdkmath.Int
	Balances         map[Account]sdkmath.Int
}

func (u *CollateralUnit) Snapshot() UnitSnapshot {
	return UnitSnapshot{
		ID:           u.id,
		Name:         u.name,
		Symbol:       u.symbol,
		CardID:       u.cardID,
		CardName:     u.cardName,
		Edition:      u.edition,
		UnitPrice:    u.unitPrice,
		TotalUnits:   u.totalUnits,
		TokensIssued: u.tokensIssued,
		Balances:     cloneBalances(u.balances),
	}
}

func (p *PoolLedger) Snapshot() PoolSnapshot {
	return PoolSnapshot{
		ID:               p.id,
		Name:             p.name,
		Symbol:           p.symbol,
		TcgType:          p.tcgType,
		Edition:          p.edition,
		Description:      p.description,
		Owner:            p.owner,
		Members:          p.Members(),
		StablecoinSupply: p.stablecoinSupply,
		Balances:         cloneBalances(p.balances),
	}
}

// RestoreUnit loads a persisted unit, checking its bookkeeping invariants.
func (s *State) RestoreUnit(snap UnitSnapshot) error {
	unit, err := NewCollateralUnit(UnitParams{
		ID:        snap.ID,
		Name:      snap.Name,
		Symbol:    snap.Symbol,
		CardID:    snap.CardID,
		CardName:  snap.CardName,
		Edition:   snap.Edition,
		UnitPrice: snap.UnitPrice,
	})
	if err != nil {
		return err
	}
	if _, ok := s.units[snap.ID]; ok {
		return fmt.Errorf("unit %s: %w", snap.ID, ErrAlreadyExists)
	}

	unit.totalUnits = snap.TotalUnits
	unit.tokensIssued = snap.TokensIssued
	if unit.tokensIssued.IsNil() {
		unit.tokensIssued = sdkmath.ZeroInt()
	}
	collateral, err := unit.unitPrice.SafeMul(sdkmath.NewIntFromUint64(unit.totalUnits))
	if err != nil {
		return fmt.Errorf("unit %s collateral: %w", snap.ID, ErrAmountOverflow)
	}
	if unit.tokensIssued.GT(collateral) {
		return fmt.Errorf("unit %s: tokens issued %s exceed collateral %s", snap.ID, unit.tokensIssued, collateral)
	}
	sum, err := sumBalances(snap.Balances)
	if err != nil {
		return fmt.Errorf("unit %s: %w", snap.ID, err)
	}
	if !sum.Equal(unit.tokensIssued) {
		return fmt.Errorf("unit %s: balances sum %s != tokens issued %s", snap.ID, sum, unit.tokensIssued)
	}
	unit.balances = cloneBalances(snap.Balances)

	s.addUnit(unit)
	return nil
}

// RestorePool loads a persisted pool. Member units must be restored first.
func (s *State) RestorePool(snap PoolSnapshot) error {
	pool, err := NewPoolLedger(PoolParams{
		ID:          snap.ID,
		Name:        snap.Name,
		Symbol:      snap.Symbol,
		TcgType:     snap.TcgType,
		Edition:     snap.Edition,
		Description: snap.Description,
		Owner:       snap.Owner,
	})
	if err != nil {
		return err
	}
	if _, ok := s.pools[snap.ID]; ok {
		return fmt.Errorf("pool %s: %w", snap.ID, ErrAlreadyExists)
	}

	for _, member := range snap.Members {
		unit, err := s.Unit(member.UnitID)
		if err != nil {
			return fmt.Errorf("pool %s: %w", snap.ID, err)
		}
		if err := pool.AddWrapSell(pool.owner, unit, member.Weight); err != nil {
			return fmt.Errorf("pool %s: %w", snap.ID, err)
		}
	}

	pool.stablecoinSupply = snap.StablecoinSupply
	if pool.stablecoinSupply.IsNil() {
		pool.stablecoinSupply = sdkmath.ZeroInt()
	}
	sum, err := sumBalances(snap.Balances)
	if err != nil {
		return fmt.Errorf("pool %s: %w", snap.ID, err)
	}
	if !sum.Equal(pool.stablecoinSupply) {
		return fmt.Errorf("pool %s: balances sum %s != supply %s", snap.ID, sum, pool.stablecoinSupply)
	}
	pool.balances = cloneBalances(snap.Balances)

	s.addPool(pool)
	return nil
}

func sumBalances(balances map[Account]sdkmath.Int) (sdkmath.Int, error) {
	sum := sdkmath.ZeroInt()
	for _, balance := range balances {
		if balance.IsNil() || balance.IsNegative() {
			return sdkmath.Int{}, fmt.Errorf("balances: %w", ErrInvalidAmount)
		}
		next, err := sum.SafeAdd(balance)
		if err != nil {
			return sdkmath.Int{}, fmt.Errorf("balances sum: %w", ErrAmountOverflow)
		}
		sum = next
	}
	return sum, nil
}
