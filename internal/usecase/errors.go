package usecase

import (
	"errors"
	"fmt"
)

// エラー種別。HTTPステータスへの変換はhandler側の変換表が行う。
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindBadRequest        ErrorKind = "BAD_REQUEST"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindConflict          ErrorKind = "CONFLICT"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindInternal          ErrorKind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewNotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewBadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NewUnauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewConflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewForbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NewInsufficientStock(message string) error {
	return &Error{Kind: KindInsufficientStock, Message: message}
}

func NewInternal(message string) error {
	return &Error{Kind: KindInternal, Message: message}
}

func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
