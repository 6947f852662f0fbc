package ledger

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not the owner of the pool
	ErrUnauthorized = errors.New("caller is not the owner")
	// ErrInsufficientPayment is returned when a deposit payment differs from count * unit price
	ErrInsufficientPayment = errors.New("payment does not match deposit cost")
	// ErrUndercollateralized is returned when minting would push supply above collateral value
	ErrUndercollateralized = errors.New("mint exceeds collateral value")
	// ErrDuplicateMember is returned when a unit is already registered in the pool
	ErrDuplicateMember = errors.New("collateral unit already registered in pool")

	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidWeight       = errors.New("weight must be in (0, 1]")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAccount      = errors.New("invalid account address")
	ErrUnitNotFound        = errors.New("collateral unit not found")
	ErrPoolNotFound        = errors.New("pool not found")
	ErrAlreadyExists       = errors.New("already exists")
	// ErrAmountOverflow is returned when a value would not fit in 256 bits
	ErrAmountOverflow = errors.New("amount exceeds 256 bits")
)
