package order

import (
	"errors"
	"fmt"
	"math"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
	"orderservice/internal/pkg/guard"
)

var ErrOrderLineItemIsNotConstructed = errors.New("OrderLineItem must be created via NewOrderLineItem constructor")

// OrderLineItem is one menu item of an order with its unit price and quantity.
// It is an immutable value object identified inside an order by its menu item id.
type OrderLineItem struct {
	menuItemID string
	name       string
	price      kernel.Money
	quantity   int

	guard guard.ConstructorGuard
}

// NewOrderLineItem validates and builds a line item. The menu item id is
// required, the price must not be negative and the quantity must be zero or
// more (a confirmed revision may bring an item down to zero).
func NewOrderLineItem(menuItemID, name string, price kernel.Money, quantity int) (OrderLineItem, error) {
	item := OrderLineItem{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMenuItemID(menuItemID),
		item.setPrice(price),
		item.setQuantity(quantity),
	); err != nil {
		return OrderLineItem{}, err
	}

	return item, nil
}

func (i OrderLineItem) Validate() error {
	return i.guard.Validate(ErrOrderLineItemIsNotConstructed)
}

func (i OrderLineItem) MenuItemID() string {
	return i.menuItemID
}

func (i OrderLineItem) Name() string {
	return i.name
}

func (i OrderLineItem) Price() kernel.Money {
	return i.price
}

func (i OrderLineItem) Quantity() int {
	return i.quantity
}

// Total returns price × quantity.
func (i OrderLineItem) Total() kernel.Money {
	return i.price.Multiply(i.quantity)
}

// DeltaForChangedQuantity returns how much the order total moves if the
// quantity of this item became newQuantity. Negative when the quantity drops.
func (i OrderLineItem) DeltaForChangedQuantity(newQuantity int) kernel.Money {
	return i.price.Multiply(newQuantity - i.quantity)
}

// IsEqual compares line items by content.
func (i OrderLineItem) IsEqual(other OrderLineItem) bool {
	return i.menuItemID == other.menuItemID &&
		i.name == other.name &&
		i.quantity == other.quantity &&
		i.price.Equal(other.price)
}

func (i OrderLineItem) withQuantity(quantity int) OrderLineItem {
	i.quantity = quantity
	return i
}

func (i *OrderLineItem) setMenuItemID(menuItemID string) error {
	if menuItemID == "" {
		return errs.NewValueIsRequiredError("menuItemId")
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *OrderLineItem) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}

func (i *OrderLineItem) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt32)
	}
	i.quantity = quantity
	return nil
}
