package ports

import (
	"context"
	"time"
)

// OrderEvent describes a committed change of an order. Amounts are decimal
// strings with two fractional digits.
type OrderEvent struct {
	OrderID       string           `json:"orderId"`
	Operation     string           `json:"operation"`
	PreviousState string           `json:"previousState"`
	State         string           `json:"state"`
	Version       int64            `json:"version"`
	OrderTotal    string           `json:"orderTotal"`
	Revision      *RevisionSummary `json:"revision,omitempty"`
	OccurredAt    time.Time        `json:"occurredAt"`
}

// RevisionSummary carries the computed effect of a revision.
type RevisionSummary struct {
	CurrentOrderTotal string           `json:"currentOrderTotal"`
	NewOrderTotal     string           `json:"newOrderTotal"`
	Delta             string           `json:"delta"`
	LineItems         []LineItemChange `json:"lineItems"`
}

type LineItemChange struct {
	MenuItemID  string `json:"menuItemId"`
	OldQuantity int    `json:"oldQuantity"`
	NewQuantity int    `json:"newQuantity"`
}

// OrderEventPublisher announces committed order changes to other services.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
