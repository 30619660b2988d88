package gameapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means a request target could not be built (empty base
	// URL or game id). This is a programming defect, not a runtime condition.
	ErrInvalidRequest = errors.New("gameapi: invalid request")

	// ErrInvalidResponse means the server answered with a success status but
	// a body that does not match the wire contract.
	ErrInvalidResponse = errors.New("gameapi: invalid response")
)

// ServerError carries a non-success status and the server-supplied message.
// Transport failures are reported with Status 0.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("game server error: status=%d", e.Status)
}
