package checkout

import "fmt"

type State string

const (
	StateNew          State = ""
	StateLoading      State = "loading"
	StateProfileSetup State = "profile-setup"
	StateAddress      State = "address"
	StatePaymentEntry State = "payment-entry"
	StateSubmitting   State = "submitting"
	StateSuccess      State = "success"
	StateFailed       State = "failed"
	StateEmptyCart    State = "empty-cart"
)

var transitions = map[State][]State{
	StateNew:          {StateLoading},
	StateLoading:      {StateLoading, StateProfileSetup, StateAddress, StateEmptyCart},
	StateProfileSetup: {StateLoading, StateAddress},
	StateAddress:      {StateLoading, StatePaymentEntry},
	StatePaymentEntry: {StateLoading, StateAddress, StateSubmitting, StateEmptyCart},
	StateSubmitting:   {StateSuccess, StateFailed},
	StateFailed:       {StatePaymentEntry},
}

// IsTerminal reports whether the checkout is over.
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateEmptyCart
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type IllegalTransitionError struct {
	From State
	To   State
}

func (e *IllegalTransitionError) Error() string {
	from := e.From
	if from == StateNew {
		from = "new"
	}
	return fmt.Sprintf("checkout cannot move from %s to %s", from, e.To)
}
