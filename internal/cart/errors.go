package cart

import (
	"fmt"

	"github.com/pkg/errors"

	"storefront/internal/api"
)

// Reason is the failure category reported to callers of cart operations.
type Reason string

const (
	ReasonNotAuthenticated Reason = "not authenticated"
	ReasonRequestFailed    Reason = "request failed"
)

var ErrItemNotInCart = errors.New("product is not in the cart")

type Error struct {
	Op     string
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cart %s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error) error {
	reason := ReasonRequestFailed
	if errors.Is(err, api.ErrNotAuthenticated) {
		reason = ReasonNotAuthenticated
	}
	return &Error{Op: op, Reason: reason, Err: err}
}

// ReasonOf returns the failure reason of a cart operation error, or "" for
// nil.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	var cartErr *Error
	if errors.As(err, &cartErr) {
		return cartErr.Reason
	}
	if errors.Is(err, api.ErrNotAuthenticated) {
		return ReasonNotAuthenticated
	}
	return ReasonRequestFailed
}
