// Package order contains the Order aggregate and its lifecycle state machine.
//
// An Order is created in status Created by the write path and advanced to
// Processed by the worker when it handles the corresponding Order.Created
// notification. Status only ever moves forward; applying the transition to an
// already processed order is a defined no-op, which is what makes at-least-once
// event delivery safe.
//
// The package also defines CreatedNotification, the immutable snapshot of an
// order published as the Order.Created event payload. The snapshot is not the
// live aggregate: consumers must re-read current state from the repository
// before mutating, since notifications may arrive late or more than once.
package order
