package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Field bounds for order creation. Names are length-bounded, quantity must be
// at least one item, and the total is capped to keep amounts inside what the
// payment side accepts.
const (
	MinNameLength  = 3
	MaxNameLength  = 100
	MinQuantity    = 1
	MinTotalAmount = 0.01
	MaxTotalAmount = 9_999_999
)

// Order represents a purchase request and its lifecycle status. It is the
// aggregate root of the pipeline.
//
// Order maintains these invariants:
//   - id is assigned exactly once and never changes
//   - customer and product names are non-empty and length-bounded
//   - quantity is at least MinQuantity, totalAmount within (0, MaxTotalAmount]
//   - status only moves forward (Created -> Processed, never back)
//   - createdAt is set once, in UTC, at construction
//
// An Order is never visible to readers before its fields pass validation:
// the only way to obtain one is through NewOrder (fresh) or RestoreOrder
// (from persistence), both of which validate.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerName identifies who placed the order
	customerName string

	// productName identifies what was ordered
	productName string

	// quantity is the number of units ordered
	quantity int

	// totalAmount is the order total in currency units
	totalAmount float64

	// status is the current state in the order lifecycle
	status Status

	// createdAt is the UTC creation timestamp, immutable after construction
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Created status with the creation timestamp
// set to the current UTC time. This is the only way to create a fresh order;
// all field invariants are checked and violations are reported together via
// errors.Join.
//
// Example:
//
//	id := kernel.NewUUID()
//	o, err := order.NewOrder(id, "Acme", "Widget", 2, 19.99)
//	if err != nil {
//	    // one or more fields failed validation; nothing was created
//	}
func NewOrder(
	id kernel.UUID,
	customerName string,
	productName string,
	quantity int,
	totalAmount float64,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setProductName(productName),
		o.setQuantity(quantity),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts the stored status and timestamp, but still validates every field so
// corrupted rows cannot leak into the domain.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	productName string,
	quantity int,
	totalAmount float64,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
		createdAt:     createdAt,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setProductName(productName),
		o.setQuantity(quantity),
		o.setTotalAmount(totalAmount),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or directly
// instantiated structs.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the name of the customer who placed the order.
func (o *Order) CustomerName() string {
	return o.customerName
}

// ProductName returns the name of the ordered product.
func (o *Order) ProductName() string {
	return o.productName
}

// Quantity returns the number of units ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// TotalAmount returns the order total in currency units.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the UTC creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// MarkProcessed advances the order to Processed in response to its creation
// notification being handled.
//
// The transition is idempotent: marking an already processed order succeeds
// and leaves it Processed, so duplicate notification deliveries are harmless.
// Any other source status is rejected without a state change.
func (o *Order) MarkProcessed() error {
	newStatus, err := o.status.Process()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if err := validateName("customerName", name); err != nil {
		return err
	}
	o.customerName = name
	return nil
}

func (o *Order) setProductName(name string) error {
	if err := validateName("productName", name); err != nil {
		return err
	}
	o.productName = name
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < MinQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, "unbounded")
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount < MinTotalAmount || totalAmount > MaxTotalAmount {
		return errs.NewValueIsOutOfRangeError(
			"totalAmount", totalAmount, MinTotalAmount, float64(MaxTotalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func validateName(paramName, name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if length := utf8.RuneCountInString(name); length < MinNameLength || length > MaxNameLength {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			paramName, name, MinNameLength, MaxNameLength,
			fmt.Errorf("length %d is outside [%d, %d]", length, MinNameLength, MaxNameLength))
	}
	return nil
}
