package http

import (
	"errors"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func newCreateOrderCommand(body NewOrder) (commands.CreateOrderCommand, error) {
	consumerID, consumerErr := kernel.UUIDFromBytes(body.ConsumerId[:])
	restaurantID, restaurantErr := kernel.UUIDFromBytes(body.RestaurantId[:])
	if err := errors.Join(consumerErr, restaurantErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	lineItems := make([]order.OrderLineItem, 0, len(body.LineItems))
	for _, item := range body.LineItems {
		price, err := kernel.NewMoney(item.Price)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		lineItem, err := order.NewOrderLineItem(item.MenuItemId, item.Name, price, item.Quantity)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		lineItems = append(lineItems, lineItem)
	}

	cmd, err := commands.NewCreateOrderCommand(consumerID, restaurantID, lineItems)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	if body.OrderMinimum != nil {
		orderMinimum, minErr := kernel.NewMoney(*body.OrderMinimum)
		if minErr != nil {
			return commands.CreateOrderCommand{}, minErr
		}
		cmd = cmd.WithOrderMinimum(orderMinimum)
	}

	if body.DeliveryInformation != nil {
		di, diErr := newDeliveryInformation(*body.DeliveryInformation)
		if diErr != nil {
			return commands.CreateOrderCommand{}, diErr
		}
		cmd = cmd.WithDeliveryInformation(di)
	}

	if body.PaymentToken != nil {
		pi, piErr := order.NewPaymentInformation(*body.PaymentToken)
		if piErr != nil {
			return commands.CreateOrderCommand{}, piErr
		}
		cmd = cmd.WithPaymentInformation(pi)
	}

	return cmd, nil
}

func newDeliveryInformation(body DeliveryInformation) (order.DeliveryInformation, error) {
	var street2 string
	if body.Address.Street2 != nil {
		street2 = *body.Address.Street2
	}

	address, err := order.NewAddress(
		body.Address.Street1, street2, body.Address.City, body.Address.State, body.Address.Zip)
	if err != nil {
		return order.DeliveryInformation{}, err
	}

	return order.NewDeliveryInformation(body.DeliveryTime, address)
}

func newOrderRevision(body Revision) (order.OrderRevision, error) {
	var di *order.DeliveryInformation
	if body.DeliveryInformation != nil {
		parsed, err := newDeliveryInformation(*body.DeliveryInformation)
		if err != nil {
			return order.OrderRevision{}, err
		}
		di = &parsed
	}

	return order.NewOrderRevision(di, body.RevisedLineItemQuantities)
}

func orderFromQuery(resp queries.GetOrderQueryResponse) Order {
	out := Order{
		OrderId:      resp.ID.Bytes(),
		Version:      resp.Version,
		State:        resp.State.String(),
		ConsumerId:   resp.ConsumerID.Bytes(),
		RestaurantId: resp.RestaurantID.Bytes(),
		LineItems:    make([]LineItem, 0, len(resp.LineItems)),
		OrderTotal:   resp.OrderTotal.String(),
		OrderMinimum: resp.OrderMinimum.String(),
		PaymentToken: resp.PaymentToken,
	}

	for _, item := range resp.LineItems {
		out.LineItems = append(out.LineItems, LineItem{
			MenuItemId: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price.String(),
			Quantity:   item.Quantity,
			Total:      item.Total.String(),
		})
	}

	if di := resp.DeliveryInformation; di != nil {
		var street2 *string
		if di.Street2 != "" {
			s := di.Street2
			street2 = &s
		}
		out.DeliveryInformation = &DeliveryInformation{
			DeliveryTime: di.DeliveryTime,
			Address: Address{
				Street1: di.Street1,
				Street2: street2,
				City:    di.City,
				State:   di.State,
				Zip:     di.Zip,
			},
		}
	}

	return out
}

func revisionResult(
	orderId openapi_types.UUID,
	state order.State,
	change order.LineItemQuantityChange,
) RevisionResult {
	result := RevisionResult{
		OrderId:           orderId,
		State:             state.String(),
		CurrentOrderTotal: change.CurrentOrderTotal.String(),
		NewOrderTotal:     change.NewOrderTotal.String(),
		Delta:             change.Delta.String(),
		LineItems:         make([]LineItemChange, 0, len(change.LineItemDeltas)),
	}
	for _, d := range change.LineItemDeltas {
		result.LineItems = append(result.LineItems, LineItemChange{
			MenuItemId:  d.MenuItemID,
			OldQuantity: d.OldQuantity,
			NewQuantity: d.NewQuantity,
		})
	}
	return result
}
