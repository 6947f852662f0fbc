package api

import (
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi/v5"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/services"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

type Handlers struct {
	service *services.Service
}

func NewHandlers(service *services.Service) *Handlers {
	return &Handlers{service: service}
}

type CreateUnitRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	CardID    uint64 `json:"card_id"`
	CardName  string `json:"card_name"`
	Edition   string `json:"edition"`
	UnitPrice string `json:"unit_price"`
}

type DepositRequest struct {
	Caller  string `json:"caller"`
	Count   uint64 `json:"count"`
	Payment string `json:"payment"`
}

type DepositResponse struct {
	Minted sdkmath.Int `json:"minted"`
}

type TransferRequest struct {
	Caller string `json:"caller"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type BalanceResponse struct {
	Account string      `json:"account"`
	Balance sdkmath.Int `json:"balance"`
}

type CreatePoolRequest struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TcgType     string `json:"tcg_type"`
	Edition     string `json:"edition"`
	Description string `json:"description"`
}

// AddMemberRequest registers a unit in a pool. Without a weight the unit
// joins with full weight.
type AddMemberRequest struct {
	Caller string  `json:"caller"`
	UnitID string  `json:"unit_id"`
	Weight *string `json:"weight,omitempty"`
}

type MintRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type CollateralValueResponse struct {
	PoolValue sdkmath.Int `json:"pool_value"`
}

type CollateralizationRatioResponse struct {
	Ratio    sdkmath.Int `json:"ratio"`
	Infinite bool        `json:"infinite"`
}

func (h *Handlers) CreateUnit(r *http.Request) (*Result, *types.Error) {
	var req CreateUnitRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	price, apiErr := parseAmount("unit_price", req.UnitPrice)
	if apiErr != nil {
		return nil, apiErr
	}

	unit, err := h.service.CreateUnit(r.Context(), ledger.UnitParams{
		ID:        req.ID,
		Name:      req.Name,
		Symbol:    req.Symbol,
		CardID:    req.CardID,
		CardName:  req.CardName,
		Edition:   req.Edition,
		UnitPrice: price,
	})
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: unit}, nil
}

func (h *Handlers) ListUnits(r *http.Request) (*Result, *types.Error) {
	return &Result{Data: h.service.ListUnits(r.Context())}, nil
}

func (h *Handlers) GetUnit(r *http.Request) (*Result, *types.Error) {
	unit, err := h.service.GetUnit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: unit}, nil
}

func (h *Handlers) GetCollateralInfo(r *http.Request) (*Result, *types.Error) {
	info, err := h.service.GetCollateralInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: info}, nil
}

func (h *Handlers) DepositCards(r *http.Request) (*Result, *types.Error) {
	var req DepositRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, apiErr := parseAccount("caller", req.Caller)
	if apiErr != nil {
		return nil, apiErr
	}
	payment, apiErr := parseAmount("payment", req.Payment)
	if apiErr != nil {
		return nil, apiErr
	}

	minted, err := h.service.DepositCards(r.Context(), chi.URLParam(r, "id"), caller, req.Count, payment)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: DepositResponse{Minted: minted}}, nil
}

func (h *Handlers) UnitBalanceOf(r *http.Request) (*Result, *types.Error) {
	account, apiErr := parseAccount("account", chi.URLParam(r, "account"))
	if apiErr != nil {
		return nil, apiErr
	}
	balance, err := h.service.UnitBalanceOf(r.Context(), chi.URLParam(r, "id"), account)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: BalanceResponse{Account: account.String(), Balance: balance}}, nil
}

func (h *Handlers) TransferUnitTokens(r *http.Request) (*Result, *types.Error) {
	caller, to, amount, apiErr := parseTransfer(r)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := h.service.TransferUnitTokens(r.Context(), chi.URLParam(r, "id"), caller, to, amount); err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusNoContent}, nil
}

func (h *Handlers) CreatePool(r *http.Request) (*Result, *types.Error) {
	var req CreatePoolRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	owner, apiErr := parseAccount("owner", req.Owner)
	if apiErr != nil {
		return nil, apiErr
	}

	pool, err := h.service.CreatePool(r.Context(), ledger.PoolParams{
		ID:          req.ID,
		Name:        req.Name,
		Symbol:      req.Symbol,
		TcgType:     req.TcgType,
		Edition:     req.Edition,
		Description: req.Description,
		Owner:       owner,
	})
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: pool}, nil
}

func (h *Handlers) ListPools(r *http.Request) (*Result, *types.Error) {
	pools, err := h.service.ListPools(r.Context())
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: pools}, nil
}

func (h *Handlers) GetPool(r *http.Request) (*Result, *types.Error) {
	pool, err := h.service.GetPool(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: pool}, nil
}

func (h *Handlers) AddMember(r *http.Request) (*Result, *types.Error) {
	var req AddMemberRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, apiErr := parseAccount("caller", req.Caller)
	if apiErr != nil {
		return nil, apiErr
	}
	if req.UnitID == "" {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "unit_id is required")
	}

	poolID := chi.URLParam(r, "id")
	var err error
	if req.Weight == nil {
		err = h.service.AddPool(r.Context(), poolID, caller, req.UnitID)
	} else {
		weight, apiErr := parseWeight(*req.Weight)
		if apiErr != nil {
			return nil, apiErr
		}
		err = h.service.AddWrapSell(r.Context(), poolID, caller, req.UnitID, weight)
	}
	if err != nil {
		return nil, ledgerError(err)
	}

	pool, err := h.service.GetPool(r.Context(), poolID)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: pool}, nil
}

func (h *Handlers) GetPoolInfo(r *http.Request) (*Result, *types.Error) {
	info, err := h.service.GetPoolInfo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: info}, nil
}

func (h *Handlers) GetTotalCollateralValue(r *http.Request) (*Result, *types.Error) {
	value, err := h.service.GetTotalCollateralValue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: CollateralValueResponse{PoolValue: value}}, nil
}

func (h *Handlers) GetCollateralizationRatio(r *http.Request) (*Result, *types.Error) {
	ratio, err := h.service.GetCurrentCollateralizationRatio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: CollateralizationRatioResponse{
		Ratio:    ratio,
		Infinite: ledger.IsInfiniteRatio(ratio),
	}}, nil
}

func (h *Handlers) GetPoolStats(r *http.Request) (*Result, *types.Error) {
	stats, err := h.service.GetPoolStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: stats}, nil
}

func (h *Handlers) Mint(r *http.Request) (*Result, *types.Error) {
	var req MintRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, apiErr := parseAccount("caller", req.Caller)
	if apiErr != nil {
		return nil, apiErr
	}
	amount, apiErr := parseAmount("amount", req.Amount)
	if apiErr != nil {
		return nil, apiErr
	}

	poolID := chi.URLParam(r, "id")
	if err := h.service.Mint(r.Context(), poolID, caller, amount); err != nil {
		return nil, ledgerError(err)
	}
	info, err := h.service.GetPoolInfo(r.Context(), poolID)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: info}, nil
}

func (h *Handlers) PoolBalanceOf(r *http.Request) (*Result, *types.Error) {
	account, apiErr := parseAccount("account", chi.URLParam(r, "account"))
	if apiErr != nil {
		return nil, apiErr
	}
	balance, err := h.service.PoolBalanceOf(r.Context(), chi.URLParam(r, "id"), account)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: BalanceResponse{Account: account.String(), Balance: balance}}, nil
}

func (h *Handlers) TransferStablecoins(r *http.Request) (*Result, *types.Error) {
	caller, to, amount, apiErr := parseTransfer(r)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := h.service.TransferStablecoins(r.Context(), chi.URLParam(r, "id"), caller, to, amount); err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusNoContent}, nil
}

func (h *Handlers) GetEvents(r *http.Request) (*Result, *types.Error) {
	q := r.URL.Query()
	filter := model.LedgerEventFilter{
		Type:   types.EventType(q.Get("type")),
		UnitID: q.Get("unit_id"),
		PoolID: q.Get("pool_id"),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, types.NewValidationError(fmt.Errorf("unknown event type %q", filter.Type))
	}

	events, next, err := h.service.GetEvents(r.Context(), filter, q.Get("pagination_key"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: PaginatedResponse[*types.LedgerEvent]{
		Data:       events,
		Pagination: PaginationResponse{NextKey: next},
	}}, nil
}

func parseTransfer(r *http.Request) (ledger.Account, ledger.Account, sdkmath.Int, *types.Error) {
	var req TransferRequest
	if err := decodeBody(r, &req); err != nil {
		return "", "", sdkmath.Int{}, err
	}
	caller, apiErr := parseAccount("caller", req.Caller)
	if apiErr != nil {
		return "", "", sdkmath.Int{}, apiErr
	}
	to, apiErr := parseAccount("to", req.To)
	if apiErr != nil {
		return "", "", sdkmath.Int{}, apiErr
	}
	amount, apiErr := parseAmount("amount", req.Amount)
	if apiErr != nil {
		return "", "", sdkmath.Int{}, apiErr
	}
	return caller, to, amount, nil
}
