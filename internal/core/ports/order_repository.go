// Package ports defines the contracts between the order application layer and
// its infrastructure: persistence, transactions and event publication.
package ports

import (
	"context"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. The repository assigns the identifier and
	// version 1 to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes back an order read earlier. The write succeeds only if the
	// stored version still equals aggregate.Version(); otherwise it fails with
	// *errs.ConcurrencyConflictError. On success the aggregate's version is
	// advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its line items, or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
