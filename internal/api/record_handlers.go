package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/priceclient"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
	"github.com/wrapsell/wrapsell-ledger/pkg"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handlers) Health(r *http.Request) (*Result, *types.Error) {
	return &Result{Data: MessageResponse{Message: "System is running"}}, nil
}

func (h *Handlers) CreateUser(r *http.Request) (*Result, *types.Error) {
	var user model.UserDocument
	if err := decodeBody(r, &user); err != nil {
		return nil, err
	}
	created, err := h.service.CreateUser(r.Context(), &user)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: created}, nil
}

func (h *Handlers) GetUsers(r *http.Request) (*Result, *types.Error) {
	users, err := h.service.GetUsers(r.Context())
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: users}, nil
}

func (h *Handlers) GetUser(r *http.Request) (*Result, *types.Error) {
	user, err := h.service.GetUserByWallet(r.Context(), chi.URLParam(r, "wallet"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: user}, nil
}

func (h *Handlers) CreateCard(r *http.Request) (*Result, *types.Error) {
	var card model.CardDocument
	if err := decodeBody(r, &card); err != nil {
		return nil, err
	}
	created, err := h.service.CreateCard(r.Context(), &card)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: created}, nil
}

type AddCardRequest struct {
	EditionName string `json:"edition_name"`
	CardName    string `json:"card_name"`
	CardNumber  string `json:"card_number"`
	UserWallet  string `json:"user_wallet,omitempty"`
}

type AddCardResponse struct {
	Card   *model.CardDocument    `json:"card"`
	Prices *priceclient.CardPrice `json:"prices"`
}

func (h *Handlers) AddCardFromMarket(r *http.Request) (*Result, *types.Error) {
	var req AddCardRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	card, prices, err := h.service.AddCardFromMarket(r.Context(), priceclient.CardQuery{
		Edition: req.EditionName,
		Name:    req.CardName,
		Number:  req.CardNumber,
	}, req.UserWallet)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: AddCardResponse{Card: card, Prices: prices}}, nil
}

func (h *Handlers) GetCards(r *http.Request) (*Result, *types.Error) {
	return h.listCards(r, db.CardFilter{})
}

func (h *Handlers) GetUserCards(r *http.Request) (*Result, *types.Error) {
	return h.listCards(r, db.CardFilter{UserWallet: chi.URLParam(r, "wallet")})
}

func (h *Handlers) GetPoolCards(r *http.Request) (*Result, *types.Error) {
	return h.listCards(r, db.CardFilter{InPool: pkg.Ptr(true)})
}

func (h *Handlers) listCards(r *http.Request, filter db.CardFilter) (*Result, *types.Error) {
	cards, err := h.service.GetCards(r.Context(), filter)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: cards}, nil
}

func (h *Handlers) UpdateCard(r *http.Request) (*Result, *types.Error) {
	var update model.CardUpdate
	if err := decodeBody(r, &update); err != nil {
		return nil, err
	}
	card, err := h.service.UpdateCard(r.Context(), chi.URLParam(r, "id"), &update)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: card}, nil
}

func (h *Handlers) DeleteCard(r *http.Request) (*Result, *types.Error) {
	if err := h.service.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: MessageResponse{Message: "Card deleted"}}, nil
}

func (h *Handlers) CreateTransaction(r *http.Request) (*Result, *types.Error) {
	var tx model.TransactionDocument
	if err := decodeBody(r, &tx); err != nil {
		return nil, err
	}
	created, err := h.service.CreateTransaction(r.Context(), &tx)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Status: http.StatusCreated, Data: created}, nil
}

func (h *Handlers) GetTransactions(r *http.Request) (*Result, *types.Error) {
	txs, err := h.service.GetTransactions(r.Context(), "")
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: txs}, nil
}

func (h *Handlers) GetUserTransactions(r *http.Request) (*Result, *types.Error) {
	txs, err := h.service.GetTransactions(r.Context(), chi.URLParam(r, "wallet"))
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: txs}, nil
}

func (h *Handlers) UpdateTransaction(r *http.Request) (*Result, *types.Error) {
	var update model.TransactionUpdate
	if err := decodeBody(r, &update); err != nil {
		return nil, err
	}
	tx, err := h.service.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), &update)
	if err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: tx}, nil
}

func (h *Handlers) DeleteTransaction(r *http.Request) (*Result, *types.Error) {
	if err := h.service.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, ledgerError(err)
	}
	return &Result{Data: MessageResponse{Message: "Transaction deleted"}}, nil
}
