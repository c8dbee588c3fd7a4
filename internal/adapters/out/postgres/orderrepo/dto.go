// Package orderrepo persists the Order aggregate with GORM. An order is stored
// as one row in "orders" plus one row per line item in "order_line_items";
// the version column backs optimistic concurrency control.
package orderrepo

import (
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database row of an order.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version      int64     `gorm:"not null"`
	State        string    `gorm:"type:varchar(32);not null;index"`
	ConsumerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null"`

	Delivery     DeliveryDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentToken *string         `gorm:"type:varchar(255)"`
	OrderMinimum decimal.Decimal `gorm:"type:numeric(19,2);not null"`

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDTO holds the optional delivery information. A nil Time means the
// order has none.
type DeliveryDTO struct {
	Time    *time.Time
	Street1 string `gorm:"type:varchar(255)"`
	Street2 string `gorm:"type:varchar(255)"`
	City    string `gorm:"type:varchar(128)"`
	State   string `gorm:"type:varchar(64)"`
	Zip     string `gorm:"type:varchar(32)"`
}

// LineItemDTO is one row of order_line_items. Position keeps the order in
// which the items were placed.
type LineItemDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID string          `gorm:"type:varchar(128);primaryKey"`
	Position   int             `gorm:"not null"`
	Name       string          `gorm:"type:varchar(255)"`
	Price      decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Quantity   int             `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		Version:      o.Version(),
		State:        o.State().String(),
		ConsumerID:   o.ConsumerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		OrderMinimum: o.OrderMinimum().Amount(),
	}

	if di, ok := o.DeliveryInformation(); ok {
		deliveryTime := di.DeliveryTime()
		address := di.DeliveryAddress()
		dto.Delivery = DeliveryDTO{
			Time:    &deliveryTime,
			Street1: address.Street1(),
			Street2: address.Street2(),
			City:    address.City(),
			State:   address.State(),
			Zip:     address.Zip(),
		}
	}

	if pi, ok := o.PaymentInformation(); ok {
		token := pi.PaymentToken()
		dto.PaymentToken = &token
	}

	dto.LineItems = lineItemsFromDomain(dto.ID, o.LineItems())
	return dto
}

func lineItemsFromDomain(orderID uuid.UUID, items []order.OrderLineItem) []LineItemDTO {
	dtos := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, LineItemDTO{
			OrderID:    orderID,
			MenuItemID: item.MenuItemID(),
			Position:   i,
			Name:       item.Name(),
			Price:      item.Price().Amount(),
			Quantity:   item.Quantity(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	consumerID, err := kernel.UUIDFromBytes(dto.ConsumerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderLineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		item, itemErr := order.NewOrderLineItem(
			itemDTO.MenuItemID, itemDTO.Name, kernel.NewMoneyFromDecimal(itemDTO.Price), itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var deliveryInformation *order.DeliveryInformation
	if dto.Delivery.Time != nil {
		address, addrErr := order.NewAddress(
			dto.Delivery.Street1, dto.Delivery.Street2, dto.Delivery.City, dto.Delivery.State, dto.Delivery.Zip)
		if addrErr != nil {
			return nil, addrErr
		}
		di, diErr := order.NewDeliveryInformation(*dto.Delivery.Time, address)
		if diErr != nil {
			return nil, diErr
		}
		deliveryInformation = &di
	}

	var paymentInformation *order.PaymentInformation
	if dto.PaymentToken != nil {
		pi, piErr := order.NewPaymentInformation(*dto.PaymentToken)
		if piErr != nil {
			return nil, piErr
		}
		paymentInformation = &pi
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                  id,
		Version:             dto.Version,
		State:               state,
		ConsumerID:          consumerID,
		RestaurantID:        restaurantID,
		LineItems:           items,
		DeliveryInformation: deliveryInformation,
		PaymentInformation:  paymentInformation,
		OrderMinimum:        kernel.NewMoneyFromDecimal(dto.OrderMinimum),
	})
}
