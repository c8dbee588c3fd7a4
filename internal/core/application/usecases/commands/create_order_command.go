package commands

import (
	"errors"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for a consumer at a restaurant.
// Optional parts are attached with the With* methods, which return copies.
//
// Example:
//
//	pizza, _ := order.NewOrderLineItem("margherita", "Margherita", kernel.NewMoneyFromInt(9), 2)
//	cmd, err := NewCreateOrderCommand(consumerID, restaurantID, []order.OrderLineItem{pizza})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	cmd = cmd.WithOrderMinimum(kernel.NewMoneyFromInt(15))
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	consumerID   kernel.UUID
	restaurantID kernel.UUID
	lineItems    []order.OrderLineItem

	orderMinimum        *kernel.Money
	deliveryInformation *order.DeliveryInformation
	paymentInformation  *order.PaymentInformation

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	consumerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []order.OrderLineItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setConsumerID(consumerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) WithOrderMinimum(orderMinimum kernel.Money) CreateOrderCommand {
	c.orderMinimum = &orderMinimum
	return c
}

func (c CreateOrderCommand) WithDeliveryInformation(deliveryInformation order.DeliveryInformation) CreateOrderCommand {
	c.deliveryInformation = &deliveryInformation
	return c
}

func (c CreateOrderCommand) WithPaymentInformation(paymentInformation order.PaymentInformation) CreateOrderCommand {
	c.paymentInformation = &paymentInformation
	return c
}

func (c CreateOrderCommand) ConsumerID() kernel.UUID {
	return c.consumerID
}

func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// LineItems returns a copy of the requested line items.
func (c CreateOrderCommand) LineItems() []order.OrderLineItem {
	items := make([]order.OrderLineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

// orderOptions translates the optional parts into order.Option values.
func (c CreateOrderCommand) orderOptions() []order.Option {
	var opts []order.Option
	if c.orderMinimum != nil {
		opts = append(opts, order.WithOrderMinimum(*c.orderMinimum))
	}
	if c.deliveryInformation != nil {
		opts = append(opts, order.WithDeliveryInformation(*c.deliveryInformation))
	}
	if c.paymentInformation != nil {
		opts = append(opts, order.WithPaymentInformation(*c.paymentInformation))
	}
	return opts
}

func (c *CreateOrderCommand) setConsumerID(consumerID kernel.UUID) error {
	if err := consumerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("consumerId", err)
	}

	c.consumerID = consumerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}

	c.restaurantID = restaurantID
	return nil
}

// setLineItems rejects an empty list and repeated menu items up front, so a
// malformed order never opens a transaction.
func (c *CreateOrderCommand) setLineItems(lineItems []order.OrderLineItem) error {
	items, err := order.NewOrderLineItems(lineItems)
	if err != nil {
		return err
	}

	c.lineItems = items.Items()
	return nil
}
