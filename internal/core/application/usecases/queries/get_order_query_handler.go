package queries

import (
	"context"
	"time"

	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the order does not exist.
// Line items come back in the order they were placed.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.LineItems, err = h.readLineItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.OrderTotal = kernel.Zero
	for _, item := range resp.LineItems {
		resp.OrderTotal = resp.OrderTotal.Add(item.Total)
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			state,
			consumer_id,
			restaurant_id,
			order_minimum,
			delivery_time,
			COALESCE(delivery_street1, ''),
			COALESCE(delivery_street2, ''),
			COALESCE(delivery_city, ''),
			COALESCE(delivery_state, ''),
			COALESCE(delivery_zip, ''),
			payment_token
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var (
		resp                     GetOrderQueryResponse
		state                    string
		consumerID, restaurantID uuid.UUID
		orderMinimum             decimal.Decimal
		deliveryTime             *time.Time
		delivery                 DeliveryInformationResponse
	)
	err = rows.Scan(
		&resp.Version,
		&state,
		&consumerID,
		&restaurantID,
		&orderMinimum,
		&deliveryTime,
		&delivery.Street1,
		&delivery.Street2,
		&delivery.City,
		&delivery.State,
		&delivery.Zip,
		&resp.PaymentToken,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID = orderID
	if resp.State, err = order.ParseState(state); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ConsumerID, err = kernel.UUIDFromBytes(consumerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.OrderMinimum = kernel.NewMoneyFromDecimal(orderMinimum)

	if deliveryTime != nil {
		delivery.DeliveryTime = deliveryTime.UTC()
		resp.DeliveryInformation = &delivery
	}

	return resp, rows.Err()
}

func (h GetOrderQueryHandler) readLineItems(ctx context.Context, orderID kernel.UUID) ([]LineItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			COALESCE(name, ''),
			price,
			quantity
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemResponse, 0)
	for rows.Next() {
		var item LineItemResponse
		var price decimal.Decimal

		if err = rows.Scan(&item.MenuItemID, &item.Name, &price, &item.Quantity); err != nil {
			return nil, err
		}

		item.Price = kernel.NewMoneyFromDecimal(price)
		item.Total = item.Price.Multiply(item.Quantity)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
