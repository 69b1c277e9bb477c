// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with an index on
// status for worker-side queries.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerName string    `gorm:"type:varchar(100);not null"`
	ProductName  string    `gorm:"type:varchar(100);not null"`
	Quantity     int       `gorm:"not null"`
	TotalAmount  float64   `gorm:"type:numeric(12,2);not null"`
	Status       int       `gorm:"index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerName: aggregate.CustomerName(),
		ProductName:  aggregate.ProductName(),
		Quantity:     aggregate.Quantity(),
		TotalAmount:  aggregate.TotalAmount(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder so corrupted rows
// are rejected at the boundary.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		dto.ProductName,
		dto.Quantity,
		dto.TotalAmount,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
