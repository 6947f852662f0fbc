package ledger

import (
	"fmt"

	"github.com/wrapsell/wrapsell-ledger/pkg"
)

// Account is a normalized (lower case, 0x prefixed) account address.
type Account string

func ParseAccount(s string) (Account, error) {
	addr, err := pkg.NormalizeAddress(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAccount, err)
	}
	return Account(addr), nil
}

func (a Account) String() string {
	return string(a)
}
