package domain

import "errors"

const defaultNotFoundMessage = "No result for this search!"

// NotFoundError carries the message returned to the client as the 404 body.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFound(msg string) *NotFoundError {
	if msg == "" {
		msg = defaultNotFoundMessage
	}
	return &NotFoundError{Message: msg}
}

var (
	ErrNotFound        = errors.New("not found")
	ErrPaymentRequired = errors.New("payment required")
	ErrUnauthorized    = errors.New("unauthorized")
)

