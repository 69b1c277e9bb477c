package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a small
// state machine with a single forward transition:
//
//	Created ──> Processed
//	              │  ▲
//	              └──┘
//	     (re-processing is a no-op)
//
// Processed is terminal. The self-transition on Processed is deliberate:
// notifications are delivered at least once, so handling a duplicate must not
// fail or produce a second side effect.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status assigned by the write path.
	// Orders in this status are waiting for the worker to pick up
	// their Order.Created notification.
	Created

	// Processed indicates the worker has handled the order's creation
	// notification. Terminal for this lifecycle.
	Processed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Processed: "Processed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Processed: "Processed",
	}
}

// StatusFromString parses a status name as carried in event payloads and
// database rows. Returns Unknown plus an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the defined lifecycle
// states. Unknown (0) and out-of-range values are invalid. Used when
// reconstructing orders from persistence or event payloads.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable status name, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Process returns the status after handling the order's creation
// notification.
//
// Valid source states:
//   - Created: the normal forward transition
//   - Processed: duplicate delivery, stays Processed
//
// Any other source state is invalid and returns an error without a
// transition.
func (s Status) Process() (Status, error) {
	if s != Created && s != Processed {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot process order in status %s", s))
	}
	return Processed, nil
}
