package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindBusinessRule ErrorKind = "business_rule"
	KindIntegrity    ErrorKind = "integrity"
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
)

// Error is the error type returned by every front-desk operation. Message is
// safe to show to the caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below, so errors.Is(err, ErrNotFound) works
// for any not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrBusinessRule = &Error{Kind: KindBusinessRule}
	ErrIntegrity    = &Error{Kind: KindIntegrity}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrForbidden    = &Error{Kind: KindForbidden}
)

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func BusinessRulef(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Integrity(message string, cause error) *Error {
	return &Error{Kind: KindIntegrity, Message: message, Err: cause}
}

// KindOf reports the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// AsBusinessRule turns a storage integrity violation into the business-rule
// error callers see. Other errors pass through unchanged.
func AsBusinessRule(err error) error {
	var de *Error
	if errors.As(err, &de) && de.Kind == KindIntegrity {
		return &Error{Kind: KindBusinessRule, Message: de.Message, Err: de}
	}
	return err
}

// OutstandingBalanceError carries the shortfall that blocked a check-out.
type OutstandingBalanceError struct {
	Remaining decimal.Decimal
	Currency  string
}

func (e *OutstandingBalanceError) Error() string {
	return fmt.Sprintf("remaining balance %s %s", e.Remaining.StringFixed(2), e.Currency)
}

func NewOutstandingBalance(remaining decimal.Decimal, currency string) *Error {
	cause := &OutstandingBalanceError{Remaining: remaining, Currency: currency}
	return &Error{
		Kind:    KindBusinessRule,
		Message: "cannot check out: " + cause.Error(),
		Err:     cause,
	}
}
