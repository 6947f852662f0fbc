package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/clients/priceclient"
	"github.com/wrapsell/wrapsell-ledger/internal/db"
	"github.com/wrapsell/wrapsell-ledger/internal/db/model"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

func (s *Service) CreateUser(ctx context.Context, user *model.UserDocument) (*model.UserDocument, error) {
	wallet, err := normalizeWallet(user.WalletAddress)
	if err != nil {
		return nil, err
	}
	if user.WalletType == "" {
		return nil, types.NewValidationError(errors.New("wallet_type is required"))
	}
	user.WalletAddress = wallet

	if err := s.db.SaveUser(ctx, user); err != nil {
		return nil, dbError(err)
	}
	return user, nil
}

func (s *Service) GetUsers(ctx context.Context) ([]*model.UserDocument, error) {
	users, err := s.db.GetUsers(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return users, nil
}

func (s *Service) GetUserByWallet(ctx context.Context, walletAddress string) (*model.UserDocument, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	user, err := s.db.GetUserByWallet(ctx, wallet)
	if err != nil {
		return nil, dbError(err)
	}
	return user, nil
}

// CreateCard stores a card. A card without a market value is priced by its
// edition, name and number when a price client is configured; a failed
// lookup leaves the value empty.
func (s *Service) CreateCard(ctx context.Context, card *model.CardDocument) (*model.CardDocument, error) {
	if err := validateCard(card); err != nil {
		return nil, err
	}

	if card.MarketValue == 0 && card.Edition != "" && s.prices != nil {
		price, err := s.prices.GetCardPrice(ctx, priceclient.CardQuery{
			Edition: card.Edition,
			Name:    card.Name,
			Number:  card.CardID,
		})
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Str("card", card.Name).
				Str("edition", card.Edition).
				Msg("Failed to look up card market value")
		} else {
			fillMarketValue(card, price)
		}
	}

	return s.saveCard(ctx, card)
}

// AddCardFromMarket looks the card up on the price site and stores it valued
// at its ungraded price. Unlike CreateCard a failed lookup is an error.
func (s *Service) AddCardFromMarket(
	ctx context.Context, query priceclient.CardQuery, userWallet string,
) (*model.CardDocument, *priceclient.CardPrice, error) {
	if s.prices == nil {
		return nil, nil, types.NewErrorWithMsg(
			http.StatusServiceUnavailable, types.ServiceUnavailable, "card price lookup is not configured",
		)
	}

	price, err := s.prices.GetCardPrice(ctx, query)
	if err != nil {
		return nil, nil, priceError(err)
	}

	card := &model.CardDocument{
		Name:       query.Name,
		CardID:     query.Number,
		Edition:    query.Edition,
		UserWallet: userWallet,
	}
	fillMarketValue(card, price)
	if err := validateCard(card); err != nil {
		return nil, nil, err
	}

	saved, err := s.saveCard(ctx, card)
	if err != nil {
		return nil, nil, err
	}
	return saved, price, nil
}

func validateCard(card *model.CardDocument) error {
	if card.Name == "" {
		return types.NewValidationError(errors.New("name is required"))
	}
	if card.CardID == "" {
		return types.NewValidationError(errors.New("card_id is required"))
	}
	if card.UserWallet != "" {
		wallet, err := normalizeWallet(card.UserWallet)
		if err != nil {
			return err
		}
		card.UserWallet = wallet
	}
	return nil
}

func fillMarketValue(card *model.CardDocument, price *priceclient.CardPrice) {
	if card.URL == "" {
		card.URL = price.URL
	}
	if ungraded, ok := price.Ungraded(); ok {
		card.MarketValue = ungraded
	}
}

func (s *Service) saveCard(ctx context.Context, card *model.CardDocument) (*model.CardDocument, error) {
	card.ID = uuid.NewString()
	if err := s.db.SaveCard(ctx, card); err != nil {
		return nil, dbError(err)
	}
	return card, nil
}

func (s *Service) GetCards(ctx context.Context, filter db.CardFilter) ([]*model.CardDocument, error) {
	if filter.UserWallet != "" {
		wallet, err := normalizeWallet(filter.UserWallet)
		if err != nil {
			return nil, err
		}
		filter.UserWallet = wallet
	}
	cards, err := s.db.GetCards(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return cards, nil
}

func (s *Service) UpdateCard(ctx context.Context, id string, update *model.CardUpdate) (*model.CardDocument, error) {
	if update.UserWallet != nil && *update.UserWallet != "" {
		wallet, err := normalizeWallet(*update.UserWallet)
		if err != nil {
			return nil, err
		}
		update.UserWallet = &wallet
	}
	card, err := s.db.UpdateCard(ctx, id, update)
	if err != nil {
		return nil, dbError(err)
	}
	return card, nil
}

func (s *Service) DeleteCard(ctx context.Context, id string) error {
	return dbError(s.db.DeleteCard(ctx, id))
}

func (s *Service) CreateTransaction(
	ctx context.Context, tx *model.TransactionDocument,
) (*model.TransactionDocument, error) {
	if tx.TransactionType != "" && !types.TransactionType(tx.TransactionType).IsValid() {
		return nil, types.NewValidationError(fmt.Errorf("unknown transaction_type %q", tx.TransactionType))
	}
	if tx.UserWallet != "" {
		wallet, err := normalizeWallet(tx.UserWallet)
		if err != nil {
			return nil, err
		}
		tx.UserWallet = wallet
	}
	tx.ID = uuid.NewString()
	if tx.TransactionDate.IsZero() {
		tx.TransactionDate = s.now().UTC()
	}

	if err := s.db.SaveTransaction(ctx, tx); err != nil {
		return nil, dbError(err)
	}
	return tx, nil
}

func (s *Service) GetTransactions(ctx context.Context, userWallet string) ([]*model.TransactionDocument, error) {
	if userWallet != "" {
		wallet, err := normalizeWallet(userWallet)
		if err != nil {
			return nil, err
		}
		userWallet = wallet
	}
	txs, err := s.db.GetTransactions(ctx, userWallet)
	if err != nil {
		return nil, dbError(err)
	}
	return txs, nil
}

func (s *Service) UpdateTransaction(
	ctx context.Context, id string, update *model.TransactionUpdate,
) (*model.TransactionDocument, error) {
	if update.TransactionType != nil && !types.TransactionType(*update.TransactionType).IsValid() {
		return nil, types.NewValidationError(fmt.Errorf("unknown transaction_type %q", *update.TransactionType))
	}
	tx, err := s.db.UpdateTransaction(ctx, id, update)
	if err != nil {
		return nil, dbError(err)
	}
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return dbError(s.db.DeleteTransaction(ctx, id))
}

func normalizeWallet(wallet string) (string, error) {
	account, err := ledger.ParseAccount(wallet)
	if err != nil {
		return "", types.NewValidationError(err)
	}
	return account.String(), nil
}

// priceError maps price lookup failures onto API errors.
func priceError(err error) error {
	switch {
	case errors.Is(err, priceclient.ErrInvalidQuery):
		return types.NewValidationError(err)
	case errors.Is(err, priceclient.ErrCardNotFound):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	default:
		return types.NewError(http.StatusBadGateway, types.UpstreamError, err)
	}
}

// dbError maps storage errors onto API errors, nil stays nil.
func dbError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case db.IsDuplicateKeyError(err):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	case db.IsInvalidPaginationTokenError(err):
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	default:
		return types.NewInternalServiceError(err)
	}
}
