package order

import (
	xerrors "glam-admin/internal/pkg/errors"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInShipping Status = "IN_SHIPPING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var AllStatuses = []Status{StatusPending, StatusInProgress, StatusInShipping, StatusDelivered, StatusCancelled}

var labels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusInShipping: "In Shipping",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

func (s Status) Valid() bool {
	_, ok := labels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// RequiresConfirmation marks the high-consequence targets.
func (s Status) RequiresConfirmation() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Decision is what the console does with a requested status change.
type Decision int

const (
	ApplyNow Decision = iota + 1
	NeedsConfirmation
)

// Decide applies the transition rule: any state may move to any other state,
// a move to the current state is refused, and DELIVERED/CANCELLED targets go
// through the confirmation step.
func Decide(from, to Status) (Decision, error) {
	if !to.Valid() {
		return 0, xerrors.ErrInvalidStatus
	}
	if from == to {
		return 0, xerrors.ErrNoopStatus
	}
	if to.RequiresConfirmation() {
		return NeedsConfirmation, nil
	}
	return ApplyNow, nil
}

// Option is one entry of the status control, disabled for the current status.
type Option struct {
	Status       Status `json:"status"`
	Label        string `json:"label"`
	Disabled     bool   `json:"disabled"`
	NeedsConfirm bool   `json:"needsConfirm"`
}

func Options(current Status) []Option {
	out := make([]Option, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		out = append(out, Option{
			Status:       s,
			Label:        s.Label(),
			Disabled:     s == current,
			NeedsConfirm: s.RequiresConfirmation(),
		})
	}
	return out
}
