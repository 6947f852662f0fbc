// Package units converts between human readable ether amounts and base units (wei).
package units

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

const EtherDecimals = 18

var weiPerEther = decimal.New(1, EtherDecimals)

// ParseEther converts a decimal ether string such as "0.1" into wei.
// Fractions finer than one wei are rejected.
func ParseEther(s string) (sdkmath.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("invalid ether amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("ether amount %q is negative", s)
	}

	wei := d.Mul(weiPerEther)
	if !wei.Equal(wei.Truncate(0)) {
		return sdkmath.Int{}, fmt.Errorf("ether amount %q has more than %d decimals", s, EtherDecimals)
	}

	return sdkmath.NewIntFromBigInt(wei.BigInt()), nil
}

// MustParseEther is ParseEther that panics, meant for constants and tests.
func MustParseEther(s string) sdkmath.Int {
	v, err := ParseEther(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatEther renders wei as an ether decimal string without trailing zeros.
func FormatEther(wei sdkmath.Int) string {
	if wei.IsNil() {
		return "0"
	}
	return decimal.NewFromBigInt(wei.BigInt(), -EtherDecimals).String()
}
