package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a non-2xx answer from the server. Message is the server's
// user-facing text, Cause the underlying reason when the server sent one.
type Error struct {
	Status  int
	Message string
	Cause   string
}

func (e *Error) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Cause)
	}
	return e.Message
}

// Is lets 401 answers match ErrUnauthorized.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}
