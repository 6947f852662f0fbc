package types

import (
	"errors"
	"net/http"

	"github.com/wrapsell/wrapsell-ledger/internal/ledger"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Forbidden            ErrorCode = "FORBIDDEN"
	Conflict             ErrorCode = "CONFLICT"
	PaymentRequired      ErrorCode = "PAYMENT_REQUIRED"
	Undercollateralized  ErrorCode = "UNDERCOLLATERALIZED"
	DuplicateMember      ErrorCode = "DUPLICATE_MEMBER"
	TooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	ServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	UpstreamError        ErrorCode = "UPSTREAM_ERROR"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is the error returned by the API layer
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

func NewValidationError(err error) *Error {
	return NewError(http.StatusBadRequest, ValidationError, err)
}

// FromLedgerError maps ledger errors onto API errors.
func FromLedgerError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return NewError(http.StatusForbidden, Forbidden, err)
	case errors.Is(err, ledger.ErrInsufficientPayment):
		return NewError(http.StatusPaymentRequired, PaymentRequired, err)
	case errors.Is(err, ledger.ErrUndercollateralized):
		return NewError(http.StatusConflict, Undercollateralized, err)
	case errors.Is(err, ledger.ErrDuplicateMember):
		return NewError(http.StatusConflict, DuplicateMember, err)
	case errors.Is(err, ledger.ErrAlreadyExists):
		return NewError(http.StatusConflict, Conflict, err)
	case errors.Is(err, ledger.ErrUnitNotFound), errors.Is(err, ledger.ErrPoolNotFound):
		return NewError(http.StatusNotFound, NotFound, err)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidWeight),
		errors.Is(err, ledger.ErrInvalidAccount),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrAmountOverflow):
		return NewError(http.StatusBadRequest, ValidationError, err)
	default:
		return NewInternalServiceError(err)
	}
}

// ToLedgerError is the inverse of FromLedgerError used by API clients: it
// recovers the ledger sentinel for an error code, or nil.
func ToLedgerError(code ErrorCode) error {
	switch code {
	case Forbidden:
		return ledger.ErrUnauthorized
	case PaymentRequired:
		return ledger.ErrInsufficientPayment
	case Undercollateralized:
		return ledger.ErrUndercollateralized
	case DuplicateMember:
		return ledger.ErrDuplicateMember
	case Conflict:
		return ledger.ErrAlreadyExists
	default:
		return nil
	}
}
