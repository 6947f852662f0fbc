package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"
	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
	"github.com/wrapsell/wrapsell-ledger/internal/types"
)

const maxBodyBytes = 1 << 20

// Result is a successful handler outcome. A zero Status means 200.
type Result struct {
	Status int
	Data   any
}

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type PaginationResponse struct {
	NextKey string `json:"next_key"`
}

type PaginatedResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type handlerFunc func(r *http.Request) (*Result, *types.Error)

// handle adapts a handlerFunc into an http.HandlerFunc and renders its
// result or error as JSON.
func handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, apiErr := h(r)
		if apiErr != nil {
			writeError(w, r, apiErr)
			return
		}
		status := http.StatusOK
		if result != nil && result.Status != 0 {
			status = result.Status
		}
		if result == nil || result.Data == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, result.Data)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, apiErr *types.Error) {
	if apiErr.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(apiErr.Err).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, apiErr.StatusCode, ErrorResponse{
		ErrorCode: apiErr.ErrorCode.String(),
		Message:   apiErr.Err.Error(),
	})
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) *types.Error {
	if r.Body == nil || r.Body == http.NoBody {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "Request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "Request body is required")
		}
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "Invalid JSON body")
	}
	return nil
}

func parseAccount(field, value string) (ledger.Account, *types.Error) {
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, field+" is required")
	}
	account, err := ledger.ParseAccount(value)
	if err != nil {
		return "", types.NewValidationError(err)
	}
	return account, nil
}

// parseAmount parses a decimal string of base units.
func parseAmount(field, value string) (sdkmath.Int, *types.Error) {
	if value == "" {
		return sdkmath.Int{}, types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, field+" is required")
	}
	amount, ok := sdkmath.NewIntFromString(value)
	if !ok {
		return sdkmath.Int{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, field+" must be an integer amount of base units",
		)
	}
	return amount, nil
}

func parseWeight(value string) (sdkmath.LegacyDec, *types.Error) {
	weight, err := sdkmath.LegacyNewDecFromStr(value)
	if err != nil {
		return sdkmath.LegacyDec{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "weight must be a decimal number",
		)
	}
	return weight, nil
}

func ledgerError(err error) *types.Error {
	if err == nil {
		return nil
	}
	return types.FromLedgerError(err)
}
