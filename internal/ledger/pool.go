package ledger

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// InfiniteRatio is reported as the collateralization ratio while no stablecoin
// has been minted. It equals the largest uint256.
var InfiniteRatio = sdkmath.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
)

var hundred = big.NewInt(100)

func IsInfiniteRatio(ratio sdkmath.Int) bool {
	return !ratio.IsNil() && ratio.Equal(InfiniteRatio)
}

// PoolLedger aggregates weighted collateral units and mints a stablecoin
// against their combined value.
type PoolLedger struct {
	id          string
	name        string
	symbol      string
	tcgType     string
	edition     string
	description string
	owner       Account

	members          []*poolMember
	stablecoinSupply sdkmath.Int
	balances         map[Account]sdkmath.Int
}

type poolMember struct {
	unit   *CollateralUnit
	weight sdkmath.LegacyDec
}

type PoolParams struct {
	ID          string
	Name        string
	Symbol      string
	TcgType     string
	Edition     string
	Description string
	Owner       Account
}

// Member is a registered unit together with its weight.
type Member struct {
	UnitID string            `json:"unit_id"`
	Weight sdkmath.LegacyDec `json:"weight"`
}

// PoolInfo is the read model returned by GetPoolInfo.
type PoolInfo struct {
	PoolValue              sdkmath.Int `json:"pool_value"`
	StablecoinSupply       sdkmath.Int `json:"stablecoin_supply"`
	CollateralizationRatio sdkmath.Int `json:"collateralization_ratio"`
	MemberCount            int         `json:"member_count"`
}

func NewPoolLedger(params PoolParams) (*PoolLedger, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("pool id is required")
	}
	if params.Owner == "" {
		return nil, fmt.Errorf("pool owner: %w", ErrInvalidAccount)
	}

	return &PoolLedger{
		id:               params.ID,
		name:             params.Name,
		symbol:           params.Symbol,
		tcgType:          params.TcgType,
		edition:          params.Edition,
		description:      params.Description,
		owner:            params.Owner,
		stablecoinSupply: sdkmath.ZeroInt(),
		balances:         make(map[Account]sdkmath.Int),
	}, nil
}

func (p *PoolLedger) ID() string {
	return p.id
}

func (p *PoolLedger) Name() string {
	return p.name
}

func (p *PoolLedger) Symbol() string {
	return p.symbol
}

func (p *PoolLedger) TcgType() string {
	return p.tcgType
}

func (p *PoolLedger) Edition() string {
	return p.edition
}

func (p *PoolLedger) Description() string {
	return p.description
}

func (p *PoolLedger) Owner() Account {
	return p.owner
}

func (p *PoolLedger) StablecoinSupply() sdkmath.Int {
	return p.stablecoinSupply
}

func (p *PoolLedger) MemberCount() int {
	return len(p.members)
}

func (p *PoolLedger) Members() []Member {
	members := make([]Member, len(p.members))
	for i, m := range p.members {
		members[i] = Member{UnitID: m.unit.id, Weight: m.weight}
	}
	return members
}

func (p *PoolLedger) HasMember(unitID string) bool {
	for _, m := range p.members {
		if m.unit.id == unitID {
			return true
		}
	}
	return false
}

// AddWrapSell registers unit as collateral with the given weight. Only the
// owner may call it and a unit can be registered once.
func (p *PoolLedger) AddWrapSell(caller Account, unit *CollateralUnit, weight sdkmath.LegacyDec) error {
	if caller != p.owner {
		return ErrUnauthorized
	}
	if unit == nil {
		return ErrUnitNotFound
	}
	if weight.IsNil() || !weight.IsPositive() || weight.GT(sdkmath.LegacyOneDec()) {
		return ErrInvalidWeight
	}
	if p.HasMember(unit.id) {
		return fmt.Errorf("%w: %s", ErrDuplicateMember, unit.id)
	}

	member := &poolMember{unit: unit, weight: weight}
	total, err := p.GetTotalCollateralValue()
	if err != nil {
		return err
	}
	if _, err := total.SafeAdd(member.value()); err != nil {
		return fmt.Errorf("pool %s collateral value: %w", p.id, ErrAmountOverflow)
	}

	p.members = append(p.members, member)
	return nil
}

// AddPool registers unit with full weight.
func (p *PoolLedger) AddPool(caller Account, unit *CollateralUnit) error {
	return p.AddWrapSell(caller, unit, sdkmath.LegacyOneDec())
}

// value is the member's weighted collateral, truncated to whole base units.
func (m *poolMember) value() sdkmath.Int {
	return m.weight.MulInt(m.unit.TotalValue()).TruncateInt()
}

// GetTotalCollateralValue recomputes the weighted collateral sum on every call.
// It fails with ErrAmountOverflow when the sum does not fit in 256 bits.
func (p *PoolLedger) GetTotalCollateralValue() (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()
	for _, m := range p.members {
		next, err := total.SafeAdd(m.value())
		if err != nil {
			return sdkmath.Int{}, fmt.Errorf("pool %s collateral value: %w", p.id, ErrAmountOverflow)
		}
		total = next
	}
	return total, nil
}

// GetCurrentCollateralizationRatio returns value * 100 / supply as an integer
// percentage, or InfiniteRatio when nothing has been minted.
func (p *PoolLedger) GetCurrentCollateralizationRatio() (sdkmath.Int, error) {
	value, err := p.GetTotalCollateralValue()
	if err != nil {
		return sdkmath.Int{}, err
	}
	return collateralizationRatio(value, p.stablecoinSupply)
}

func collateralizationRatio(value, supply sdkmath.Int) (sdkmath.Int, error) {
	if supply.IsZero() {
		return InfiniteRatio, nil
	}
	ratio := new(big.Int).Mul(value.BigInt(), hundred)
	ratio.Quo(ratio, supply.BigInt())
	if ratio.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, fmt.Errorf("collateralization ratio: %w", ErrAmountOverflow)
	}
	return sdkmath.NewIntFromBigInt(ratio), nil
}

// Mint issues amount stablecoins to the owner if the pool stays fully collateralized.
func (p *PoolLedger) Mint(caller Account, amount sdkmath.Int) error {
	if caller != p.owner {
		return ErrUnauthorized
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}

	newSupply, err := p.stablecoinSupply.SafeAdd(amount)
	if err != nil {
		return fmt.Errorf("stablecoin supply: %w", ErrAmountOverflow)
	}
	value, err := p.GetTotalCollateralValue()
	if err != nil {
		return err
	}
	if newSupply.GT(value) {
		return fmt.Errorf("%w: supply %s + %s > collateral %s", ErrUndercollateralized, p.stablecoinSupply, amount, value)
	}

	p.stablecoinSupply = newSupply
	p.balances[p.owner] = p.BalanceOf(p.owner).Add(amount)
	return nil
}

func (p *PoolLedger) GetPoolInfo() (PoolInfo, error) {
	value, err := p.GetTotalCollateralValue()
	if err != nil {
		return PoolInfo{}, err
	}
	ratio, err := collateralizationRatio(value, p.stablecoinSupply)
	if err != nil {
		return PoolInfo{}, err
	}
	return PoolInfo{
		PoolValue:              value,
		StablecoinSupply:       p.stablecoinSupply,
		CollateralizationRatio: ratio,
		MemberCount:            len(p.members),
	}, nil
}

func (p *PoolLedger) BalanceOf(account Account) sdkmath.Int {
	balance, ok := p.balances[account]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return balance
}

// Transfer moves stablecoins between accounts; supply is unchanged.
func (p *PoolLedger) Transfer(caller, to Account, amount sdkmath.Int) error {
	return transfer(p.balances, caller, to, amount)
}

// clone copies the pool, resolving members against units of the cloned state.
func (p *PoolLedger) clone(units map[string]*CollateralUnit) *PoolLedger {
	c := *p
	c.balances = cloneBalances(p.balances)
	c.members = make([]*poolMember, len(p.members))
	for i, m := range p.members {
		c.members[i] = &poolMember{unit: units[m.unit.id], weight: m.weight}
	}
	return &c
}
