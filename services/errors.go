package services

import "errors"

// Error taxonomy shared by the engines. Per-unit failures inside a batch
// call are carried in UnitOutcome values, not returned as the call error;
// only structural failures (missing demand line, store errors) abort a
// whole call.
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("unit already claimed or picked")
	ErrMismatch           = errors.New("unit does not match demand line")
	ErrInsufficientSupply = errors.New("no available supply")
	ErrInvalidIndex       = errors.New("provenance line index out of bounds")
	ErrNoLocation         = errors.New("no usable location provided")
)

// UnitOutcome is the per-unit result of a batch operation. Failed units
// never abort the call; the caller summarizes the list.
type UnitOutcome struct {
	Pallet   string `json:"pallet"`
	Quantity int    `json:"quantity"`
	OK       bool   `json:"ok"`
	Reason   string `json:"reason,omitempty"`
	Err      error  `json:"-"`
}

func failedOutcome(pallet string, qty int, err error, reason string) UnitOutcome {
	return UnitOutcome{Pallet: pallet, Quantity: qty, OK: false, Err: err, Reason: reason}
}

func okOutcome(pallet string, qty int) UnitOutcome {
	return UnitOutcome{Pallet: pallet, Quantity: qty, OK: true}
}
