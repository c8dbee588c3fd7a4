// Package queries contains the read side of the order service. Handlers run
// plain SQL against the tables written by orderrepo and return flat response
// structs; they never load aggregates.
package queries

import (
	"errors"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order by id.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is a snapshot of an order. DeliveryInformation and
// PaymentToken are nil when the order has none.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	Version             int64
	State               order.State
	ConsumerID          kernel.UUID
	RestaurantID        kernel.UUID
	LineItems           []LineItemResponse
	OrderTotal          kernel.Money
	OrderMinimum        kernel.Money
	DeliveryInformation *DeliveryInformationResponse
	PaymentToken        *string
}

type LineItemResponse struct {
	MenuItemID string
	Name       string
	Price      kernel.Money
	Quantity   int
	Total      kernel.Money
}

type DeliveryInformationResponse struct {
	DeliveryTime time.Time
	Street1      string
	Street2      string
	City         string
	State        string
	Zip          string
}
