package services

import (
	"context"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/internal/utils"
	"github.com/wrapsell/wrapsell-ledger/pkg/units"
)

type UnitView struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Symbol     string                `json:"symbol"`
	CardID     uint64                `json:"card_id"`
	CardName   string                `json:"card_name"`
	Edition    string                `json:"edition"`
	UnitPrice  sdkmath.Int           `json:"unit_price"`
	Collateral ledger.CollateralInfo `json:"collateral"`
}

func unitView(u *ledger.CollateralUnit) *UnitView {
	return &UnitView{
		ID:         u.ID(),
		Name:       u.Name(),
		Symbol:     u.Symbol(),
		CardID:     u.CardID(),
		CardName:   u.CardName(),
		Edition:    u.Edition(),
		UnitPrice:  u.UnitPrice(),
		Collateral: u.GetCollateralInfo(),
	}
}

// CreateUnit registers a new collateral unit. An empty id is generated.
func (s *Service) CreateUnit(ctx context.Context, params ledger.UnitParams) (*UnitView, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	var view *UnitView
	err := s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		unit, err := state.CreateUnit(params)
		if err != nil {
			return nil, err
		}
		view = unitView(unit)

		event := s.newEvent(types.EventUnitCreated)
		event.UnitID = unit.ID()
		event.Amount = unit.UnitPrice().String()
		return &change{unit: unit, event: event}, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListUnits(ctx context.Context) []*UnitView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.state.Units()
	views := make([]*UnitView, 0, len(all))
	for _, u := range all {
		views = append(views, unitView(u))
	}
	return views
}

func (s *Service) GetUnit(ctx context.Context, unitID string) (*UnitView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, err := s.state.Unit(unitID)
	if err != nil {
		return nil, err
	}
	return unitView(unit), nil
}

func (s *Service) GetCollateralInfo(ctx context.Context, unitID string) (ledger.CollateralInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, err := s.state.Unit(unitID)
	if err != nil {
		return ledger.CollateralInfo{}, err
	}
	return unit.GetCollateralInfo(), nil
}

// DepositCards deposits count cards into a unit and returns the minted tokens.
func (s *Service) DepositCards(
	ctx context.Context, unitID string, caller ledger.Account, count uint64, payment sdkmath.Int,
) (sdkmath.Int, error) {
	var minted sdkmath.Int
	err := s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		unit, deposited, err := state.DepositCards(unitID, caller, count, payment)
		if err != nil {
			return nil, err
		}
		minted = deposited

		event := s.newEvent(types.EventCardsDeposited)
		event.UnitID = unit.ID()
		event.Account = caller.String()
		event.Count = count
		event.Amount = minted.String()

		tx := s.newTransaction(types.TransactionDeposit, caller)
		tx.UnitID = unit.ID()
		tx.CardID = strconv.FormatUint(unit.CardID(), 10)
		tx.Amount = etherFloat(minted)

		return &change{unit: unit, event: event, tx: tx}, nil
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return minted, nil
}

func (s *Service) UnitBalanceOf(ctx context.Context, unitID string, account ledger.Account) (sdkmath.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, err := s.state.Unit(unitID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return unit.BalanceOf(account), nil
}

func (s *Service) TransferUnitTokens(
	ctx context.Context, unitID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	return s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		unit, err := state.Unit(unitID)
		if err != nil {
			return nil, err
		}
		if err := unit.Transfer(caller, to, amount); err != nil {
			return nil, err
		}

		event := s.newEvent(types.EventTokensTransferred)
		event.UnitID = unit.ID()
		event.Account = caller.String()
		event.To = to.String()
		event.Amount = amount.String()

		tx := s.newTransaction(types.TransactionTransfer, caller)
		tx.UnitID = unit.ID()
		tx.Amount = etherFloat(amount)

		return &change{unit: unit, event: event, tx: tx}, nil
	})
}

func (s *Service) newTransaction(typ types.TransactionType, wallet ledger.Account) *model.TransactionDocument {
	return &model.TransactionDocument{
		ID:              uuid.NewString(),
		UserWallet:      wallet.String(),
		TransactionType: typ.String(),
		TransactionDate: s.now().UTC(),
	}
}

// etherFloat is a display approximation for transaction records only.
func etherFloat(wei sdkmath.Int) float64 {
	f, err := strconv.ParseFloat(units.FormatEther(wei), 64)
	if err != nil {
		return 0
	}
	return f
}
