// Package assistant talks to the external text-generation service that
// answers chat messages.
package assistant

import (
	"context"
	"errors"
)

// Gateway sends one prompt and waits for the whole completion.
type Gateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is reported when the service answers without any text.
var ErrEmptyResponse = errors.New("empty response from assistant")

// GatewayError wraps any failure of the upstream service: transport errors,
// quota or API errors and unusable responses.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
