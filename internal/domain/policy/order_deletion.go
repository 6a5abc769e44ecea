// Package policy holds the order deletion state machine.
//
// A delete request starts Pending. An order without dependents goes straight
// to Deleted. An order with dependents is Blocked unless the caller explicitly
// asked for force, in which case it moves to ForceRequested and is removed
// together with its dependents.
package policy

import "encoding/json"

// DeletionState is a step of an order delete request
type DeletionState int

const (
	DeletionPending DeletionState = iota
	DeletionBlocked
	DeletionForceRequested
	DeletionDeleted
)

func (s DeletionState) String() string {
	switch s {
	case DeletionBlocked:
		return "BlockedHasDependents"
	case DeletionForceRequested:
		return "ForceRequested"
	case DeletionDeleted:
		return "Deleted"
	default:
		return "Pending"
	}
}

// Next returns the state reached from s. Force is only honoured when the
// caller passes it; it is never inferred from the dependents.
func (s DeletionState) Next(hasDependents, force bool) DeletionState {
	switch s {
	case DeletionPending:
		if !hasDependents {
			return DeletionDeleted
		}
		if force {
			return DeletionForceRequested
		}
		return DeletionBlocked
	case DeletionBlocked:
		if force {
			return DeletionForceRequested
		}
		return DeletionBlocked
	case DeletionForceRequested:
		return DeletionDeleted
	default:
		return s
	}
}

// Dependents counts the records that keep an order from a plain delete
type Dependents struct {
	Items        int64 `json:"items"`
	Payments     int64 `json:"payments"`
	Installments int64 `json:"installments"`
}

// Any reports whether at least one dependent exists
func (d Dependents) Any() bool {
	return d.Items > 0 || d.Payments > 0 || d.Installments > 0
}

// DeletionOutcome is the result reported to the caller of a delete
type DeletionOutcome int

const (
	OutcomeDeleted DeletionOutcome = iota
	OutcomeBlockedHasDependents
	OutcomeFailed
)

func (o DeletionOutcome) String() string {
	switch o {
	case OutcomeDeleted:
		return "Deleted"
	case OutcomeBlockedHasDependents:
		return "BlockedHasDependents"
	default:
		return "Failed"
	}
}

func (o DeletionOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}
