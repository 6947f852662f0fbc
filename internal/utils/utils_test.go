package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type depositor struct{}

func (depositor) DepositCards() string {
	return GetFunctionName(0)
}

func TestGetFunctionName(t *testing.T) {
	assert.Equal(t, "DepositCards", depositor{}.DepositCards())
	assert.Equal(t, "TestGetFunctionName", GetFunctionName(0))
}

func TestShortFuncName(t *testing.T) {
	assert.Equal(t, "Mint", shortFuncName("github.com/wrapsell/wrapsell-ledger/internal/services.(*Service).Mint"))
	assert.Equal(t, "Setup", shortFuncName("github.com/wrapsell/wrapsell-ledger/internal/db/model.Setup"))
	assert.Equal(t, "plain", shortFuncName("plain"))
}
