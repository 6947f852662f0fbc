package ledger

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// CollateralUnit tracks deposited physical cards of one type and the fungible
// tokens minted 1:1 against their value.
type CollateralUnit struct {
	id       string
	name     string
	symbol   string
	cardID   uint64
	cardName string
	edition  string

	unitPrice    sdkmath.Int
	totalUnits   uint64
	tokensIssued sdkmath.Int
	balances     map[Account]sdkmath.Int
}

type UnitParams struct {
	ID        string
	Name      string
	Symbol    string
	CardID    uint64
	CardName  string
	Edition   string
	UnitPrice sdkmath.Int
}

// CollateralInfo is the read model returned by GetCollateralInfo.
type CollateralInfo struct {
	TotalUnits   uint64      `json:"total_units"`
	TotalValue   sdkmath.Int `json:"total_value"`
	TokensIssued sdkmath.Int `json:"tokens_issued"`
}

func NewCollateralUnit(params UnitParams) (*CollateralUnit, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("unit id is required")
	}
	if params.UnitPrice.IsNil() || !params.UnitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price: %w", ErrInvalidAmount)
	}

	return &CollateralUnit{
		id:           params.ID,
		name:         params.Name,
		symbol:       params.Symbol,
		cardID:       params.CardID,
		cardName:     params.CardName,
		edition:      params.Edition,
		unitPrice:    params.UnitPrice,
		tokensIssued: sdkmath.ZeroInt(),
		balances:     make(map[Account]sdkmath.Int),
	}, nil
}

func (u *CollateralUnit) ID() string {
	return u.id
}

func (u *CollateralUnit) Name() string {
	return u.name
}

func (u *CollateralUnit) Symbol() string {
	return u.symbol
}

func (u *CollateralUnit) CardID() uint64 {
	return u.cardID
}

func (u *CollateralUnit) CardName() string {
	return u.cardName
}

func (u *CollateralUnit) Edition() string {
	return u.edition
}

func (u *CollateralUnit) UnitPrice() sdkmath.Int {
	return u.unitPrice
}

func (u *CollateralUnit) TotalUnits() uint64 {
	return u.totalUnits
}

// DepositCards registers count physical cards paid with paymentValue and mints
// count * unitPrice tokens to the caller. Nothing changes on error.
func (u *CollateralUnit) DepositCards(caller Account, count uint64, paymentValue sdkmath.Int) (sdkmath.Int, error) {
	if count == 0 {
		return sdkmath.Int{}, fmt.Errorf("card count: %w", ErrInvalidAmount)
	}
	if caller == "" {
		return sdkmath.Int{}, ErrInvalidAccount
	}

	cost, err := u.unitPrice.SafeMul(sdkmath.NewIntFromUint64(count))
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("deposit cost: %w", ErrAmountOverflow)
	}
	if paymentValue.IsNil() || !paymentValue.Equal(cost) {
		return sdkmath.Int{}, fmt.Errorf("%w: required %s", ErrInsufficientPayment, cost)
	}

	issued, err := u.tokensIssued.SafeAdd(cost)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("token supply: %w", ErrAmountOverflow)
	}
	if u.totalUnits+count < u.totalUnits {
		return sdkmath.Int{}, fmt.Errorf("card count: %w", ErrAmountOverflow)
	}

	u.totalUnits += count
	u.tokensIssued = issued
	u.balances[caller] = u.BalanceOf(caller).Add(cost)

	return cost, nil
}

// TotalValue is totalUnits * unitPrice.
func (u *CollateralUnit) TotalValue() sdkmath.Int {
	return u.unitPrice.Mul(sdkmath.NewIntFromUint64(u.totalUnits))
}

func (u *CollateralUnit) GetCollateralInfo() CollateralInfo {
	return CollateralInfo{
		TotalUnits:   u.totalUnits,
		TotalValue:   u.TotalValue(),
		TokensIssued: u.tokensIssued,
	}
}

func (u *CollateralUnit) BalanceOf(account Account) sdkmath.Int {
	balance, ok := u.balances[account]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return balance
}

// Transfer moves unit tokens between accounts; tokensIssued is unchanged.
func (u *CollateralUnit) Transfer(caller, to Account, amount sdkmath.Int) error {
	return transfer(u.balances, caller, to, amount)
}

func (u *CollateralUnit) clone() *CollateralUnit {
	c := *u
	c.balances = cloneBalances(u.balances)
	return &c
}

func transfer(balances map[Account]sdkmath.Int, from, to Account, amount sdkmath.Int) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount
	}

	fromBalance, ok := balances[from]
	if !ok || fromBalance.LT(amount) {
		return ErrInsufficientBalance
	}

	balances[from] = fromBalance.Sub(amount)
	toBalance, ok := balances[to]
	if !ok {
		toBalance = sdkmath.ZeroInt()
	}
	balances[to] = toBalance.Add(amount)

	return nil
}

func cloneBalances(balances map[Account]sdkmath.Int) map[Account]sdkmath.Int {
	c := make(map[Account]sdkmath.Int, len(balances))
	for account, balance := range balances {
		c[account] = balance
	}
	return c
}
