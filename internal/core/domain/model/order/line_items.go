package order

import (
	"fmt"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/pkg/errs"
)

// OrderLineItems owns the items of an order and everything derived from them.
// It has no knowledge of order state: computing the effect of a revision and
// applying it are separate calls so the state machine can check business
// rules in between.
type OrderLineItems struct {
	items []OrderLineItem
}

// NewOrderLineItems requires at least one item and unique menu item ids.
func NewOrderLineItems(items []OrderLineItem) (OrderLineItems, error) {
	if len(items) == 0 {
		return OrderLineItems{}, errs.NewValueIsRequiredError("lineItems")
	}

	seen := make(map[string]struct{}, len(items))
	copied := make([]OrderLineItem, 0, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return OrderLineItems{}, err
		}
		if _, dup := seen[item.MenuItemID()]; dup {
			return OrderLineItems{}, errs.NewValueIsInvalidErrorWithCause(
				"lineItems", fmt.Errorf("menu item %q appears more than once", item.MenuItemID()))
		}
		seen[item.MenuItemID()] = struct{}{}
		copied = append(copied, item)
	}

	return OrderLineItems{items: copied}, nil
}

// Items returns a copy of the line items in their original order.
func (l OrderLineItems) Items() []OrderLineItem {
	items := make([]OrderLineItem, len(l.items))
	copy(items, l.items)
	return items
}

// OrderTotal sums price × quantity over all items.
func (l OrderLineItems) OrderTotal() kernel.Money {
	total := kernel.Zero
	for _, item := range l.items {
		total = total.Add(item.Total())
	}
	return total
}

// FindOrderLineItem looks an item up by menu item id.
func (l OrderLineItems) FindOrderLineItem(menuItemID string) (OrderLineItem, bool) {
	if idx := l.indexOf(menuItemID); idx >= 0 {
		return l.items[idx], true
	}
	return OrderLineItem{}, false
}

// LineItemQuantityChange computes what applying the revision would do,
// without touching the receiver. Items not named by the revision keep their
// quantity. A revision naming an unknown item fails with *InvalidRevisionError.
func (l OrderLineItems) LineItemQuantityChange(revision OrderRevision) (LineItemQuantityChange, error) {
	if err := revision.Validate(); err != nil {
		return LineItemQuantityChange{}, err
	}

	current := l.OrderTotal()
	delta := kernel.Zero
	deltas := make([]LineItemDelta, 0, len(revision.revisedQuantities))

	for _, menuItemID := range revision.menuItemIDs() {
		item, ok := l.FindOrderLineItem(menuItemID)
		if !ok {
			return LineItemQuantityChange{}, NewInvalidRevisionError(menuItemID)
		}

		newQuantity := revision.revisedQuantities[menuItemID]
		itemDelta := item.DeltaForChangedQuantity(newQuantity)
		delta = delta.Add(itemDelta)
		deltas = append(deltas, LineItemDelta{
			MenuItemID:    menuItemID,
			OldQuantity:   item.Quantity(),
			NewQuantity:   newQuantity,
			QuantityDelta: newQuantity - item.Quantity(),
			TotalDelta:    itemDelta,
		})
	}

	return LineItemQuantityChange{
		CurrentOrderTotal: current,
		NewOrderTotal:     current.Add(delta),
		Delta:             delta,
		LineItemDeltas:    deltas,
	}, nil
}

// UpdateLineItems sets the quantities named by the revision. All references
// are checked before any item changes, so a failed call leaves the items as
// they were.
func (l *OrderLineItems) UpdateLineItems(revision OrderRevision) error {
	if err := revision.Validate(); err != nil {
		return err
	}

	indexes := make(map[string]int, len(revision.revisedQuantities))
	for _, menuItemID := range revision.menuItemIDs() {
		idx := l.indexOf(menuItemID)
		if idx < 0 {
			return NewInvalidRevisionError(menuItemID)
		}
		indexes[menuItemID] = idx
	}

	for menuItemID, idx := range indexes {
		l.items[idx] = l.items[idx].withQuantity(revision.revisedQuantities[menuItemID])
	}
	return nil
}

func (l OrderLineItems) indexOf(menuItemID string) int {
	for i, item := range l.items {
		if item.MenuItemID() == menuItemID {
			return i
		}
	}
	return -1
}
