package pkg

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const accountAddressLen = 20

// NormalizeAddress validates a 0x-prefixed 20-byte hex account address and
// returns it in lower case.
func NormalizeAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if !strings.HasPrefix(trimmed, "0x") && !strings.HasPrefix(trimmed, "0X") {
		return "", fmt.Errorf("address %q must start with 0x", address)
	}

	bz, err := hex.DecodeString(trimmed[2:])
	if err != nil {
		return "", fmt.Errorf("address %q is not hex: %w", address, err)
	}
	if len(bz) != accountAddressLen {
		return "", fmt.Errorf("address %q must be %d bytes, got %d", address, accountAddressLen, len(bz))
	}

	return "0x" + hex.EncodeToString(bz), nil
}
