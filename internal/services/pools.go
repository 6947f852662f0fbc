package services

import (
	"context"
	"errors"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/internal/utils"
)

type PoolView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	TcgType     string          `json:"tcg_type"`
	Edition     string          `json:"edition"`
	Description string          `json:"description"`
	Owner       string          `json:"owner"`
	Members     []ledger.Member `json:"members"`
	Info        ledger.PoolInfo `json:"info"`
}

func poolView(p *ledger.PoolLedger) (*PoolView, error) {
	info, err := p.GetPoolInfo()
	if err != nil {
		return nil, err
	}
	return &PoolView{
		ID:          p.ID(),
		Name:        p.Name(),
		Symbol:      p.Symbol(),
		TcgType:     p.TcgType(),
		Edition:     p.Edition(),
		Description: p.Description(),
		Owner:       p.Owner().String(),
		Members:     p.Members(),
		Info:        info,
	}, nil
}

// CreatePool registers a new pool administered by params.Owner. An empty id is generated.
func (s *Service) CreatePool(ctx context.Context, params ledger.PoolParams) (*PoolView, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	var view *PoolView
	err := s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		pool, err := state.CreatePool(params)
		if err != nil {
			return nil, err
		}
		if view, err = poolView(pool); err != nil {
			return nil, err
		}

		event := s.newEvent(types.EventPoolCreated)
		event.PoolID = pool.ID()
		event.Account = pool.Owner().String()
		return &change{pool: pool, event: event}, nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListPools(ctx context.Context) ([]*PoolView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.state.Pools()
	views := make([]*PoolView, 0, len(all))
	for _, p := range all {
		view, err := poolView(p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) GetPool(ctx context.Context, poolID string) (*PoolView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, err := s.state.Pool(poolID)
	if err != nil {
		return nil, err
	}
	return poolView(pool)
}

// AddWrapSell registers a collateral unit in a pool with the given weight.
func (s *Service) AddWrapSell(
	ctx context.Context, poolID string, caller ledger.Account, unitID string, weight sdkmath.LegacyDec,
) error {
	return s.addMember(ctx, utils.GetFunctionName(0), poolID, unitID, func(pool *ledger.PoolLedger, unit *ledger.CollateralUnit) error {
		return pool.AddWrapSell(caller, unit, weight)
	})
}

// AddPool registers a collateral unit in a pool with full weight.
func (s *Service) AddPool(ctx context.Context, poolID string, caller ledger.Account, unitID string) error {
	return s.addMember(ctx, utils.GetFunctionName(0), poolID, unitID, func(pool *ledger.PoolLedger, unit *ledger.CollateralUnit) error {
		return pool.AddPool(caller, unit)
	})
}

func (s *Service) addMember(
	ctx context.Context,
	operation, poolID, unitID string,
	add func(pool *ledger.PoolLedger, unit *ledger.CollateralUnit) error,
) error {
	return s.commit(ctx, operation, func(state *ledger.State) (*change, error) {
		pool, err := state.Pool(poolID)
		if err != nil {
			return nil, err
		}
		// ownership is checked before the unit is resolved
		unit, unitErr := state.Unit(unitID)
		if err := add(pool, unit); err != nil {
			if unitErr != nil && errors.Is(err, ledger.ErrUnitNotFound) {
				return nil, unitErr
			}
			return nil, err
		}

		event := s.newEvent(types.EventMemberAdded)
		event.PoolID = pool.ID()
		event.UnitID = unit.ID()
		event.Account = pool.Owner().String()
		for _, m := range pool.Members() {
			if m.UnitID == unit.ID() {
				event.Weight = m.Weight.String()
			}
		}
		return &change{pool: pool, event: event}, nil
	})
}

func (s *Service) GetPoolInfo(ctx context.Context, poolID string) (ledger.PoolInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, err := s.state.Pool(poolID)
	if err != nil {
		return ledger.PoolInfo{}, err
	}
	return pool.GetPoolInfo()
}

func (s *Service) GetTotalCollateralValue(ctx context.Context, poolID string) (sdkmath.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, err := s.state.Pool(poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return pool.GetTotalCollateralValue()
}

func (s *Service) GetCurrentCollateralizationRatio(ctx context.Context, poolID string) (sdkmath.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, err := s.state.Pool(poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return pool.GetCurrentCollateralizationRatio()
}

// Mint issues stablecoins to the pool owner.
func (s *Service) Mint(ctx context.Context, poolID string, caller ledger.Account, amount sdkmath.Int) error {
	return s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		pool, err := state.Pool(poolID)
		if err != nil {
			return nil, err
		}
		if err := pool.Mint(caller, amount); err != nil {
			return nil, err
		}

		event := s.newEvent(types.EventStablecoinMinted)
		event.PoolID = pool.ID()
		event.Account = caller.String()
		event.Amount = amount.String()

		tx := s.newTransaction(types.TransactionMint, caller)
		tx.PoolID = pool.ID()
		tx.StablecoinsInvolved = etherFloat(amount)

		return &change{pool: pool, event: event, tx: tx}, nil
	})
}

func (s *Service) PoolBalanceOf(ctx context.Context, poolID string, account ledger.Account) (sdkmath.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool, err := s.state.Pool(poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return pool.BalanceOf(account), nil
}

func (s *Service) TransferStablecoins(
	ctx context.Context, poolID string, caller, to ledger.Account, amount sdkmath.Int,
) error {
	return s.commit(ctx, utils.GetFunctionName(0), func(state *ledger.State) (*change, error) {
		pool, err := state.Pool(poolID)
		if err != nil {
			return nil, err
		}
		if err := pool.Transfer(caller, to, amount); err != nil {
			return nil, err
		}

		event := s.newEvent(types.EventTokensTransferred)
		event.PoolID = pool.ID()
		event.Account = caller.String()
		event.To = to.String()
		event.Amount = amount.String()

		tx := s.newTransaction(types.TransactionTransfer, caller)
		tx.PoolID = pool.ID()
		tx.StablecoinsInvolved = etherFloat(amount)

		return &change{pool: pool, event: event, tx: tx}, nil
	})
}
