package types

type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionMint     TransactionType = "mint"
	TransactionTransfer TransactionType = "transfer"
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionMint, TransactionTransfer, TransactionPurchase, TransactionSale:
		return true
	default:
		return false
	}
}
