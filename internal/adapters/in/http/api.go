package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of /api/v1. Field names follow api/openapi.yaml.

type Address struct {
	Street1 string  `json:"street1"`
	Street2 *string `json:"street2,omitempty"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zip     string  `json:"zip"`
}

type DeliveryInformation struct {
	DeliveryTime time.Time `json:"deliveryTime"`
	Address      Address   `json:"address"`
}

type NewLineItem struct {
	MenuItemId string `json:"menuItemId"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
}

type NewOrder struct {
	ConsumerId          openapi_types.UUID   `json:"consumerId"`
	RestaurantId        openapi_types.UUID   `json:"restaurantId"`
	LineItems           []NewLineItem        `json:"lineItems"`
	OrderMinimum        *string              `json:"orderMinimum,omitempty"`
	DeliveryInformation *DeliveryInformation `json:"deliveryInformation,omitempty"`
	PaymentToken        *string              `json:"paymentToken,omitempty"`
}

type OrderCreated struct {
	OrderId openapi_types.UUID `json:"orderId"`
}

type LineItem struct {
	MenuItemId string `json:"menuItemId"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Total      string `json:"total"`
}

type Order struct {
	OrderId             openapi_types.UUID   `json:"orderId"`
	Version             int64                `json:"version"`
	State               string               `json:"state"`
	ConsumerId          openapi_types.UUID   `json:"consumerId"`
	RestaurantId        openapi_types.UUID   `json:"restaurantId"`
	LineItems           []LineItem           `json:"lineItems"`
	OrderTotal          string               `json:"orderTotal"`
	OrderMinimum        string               `json:"orderMinimum"`
	DeliveryInformation *DeliveryInformation `json:"deliveryInformation,omitempty"`
	PaymentToken        *string              `json:"paymentToken,omitempty"`
}

type OrderState struct {
	OrderId openapi_types.UUID `json:"orderId"`
	State   string             `json:"state"`
	Version int64              `json:"version"`
}

type Revision struct {
	RevisedLineItemQuantities map[string]int       `json:"revisedLineItemQuantities"`
	DeliveryInformation       *DeliveryInformation `json:"deliveryInformation,omitempty"`
}

type LineItemChange struct {
	MenuItemId  string `json:"menuItemId"`
	OldQuantity int    `json:"oldQuantity"`
	NewQuantity int    `json:"newQuantity"`
}

type RevisionResult struct {
	OrderId           openapi_types.UUID `json:"orderId"`
	State             string             `json:"state"`
	CurrentOrderTotal string             `json:"currentOrderTotal"`
	NewOrderTotal     string             `json:"newOrderTotal"`
	Delta             string             `json:"delta"`
	LineItems         []LineItemChange   `json:"lineItems"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ServerInterface lists one method per operationId of api/openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/approve)
	ApproveOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/reject)
	RejectOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel/undo)
	UndoCancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel/confirm)
	ConfirmCancelOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/revision)
	ReviseOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/revision/confirm)
	ConfirmRevision(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/revision/reject)
	RejectRevision(ctx echo.Context, orderId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) withOrderID(
	handle func(ctx echo.Context, orderId openapi_types.UUID) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var orderId openapi_types.UUID

		err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
		}

		return handle(ctx, orderId)
	}
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds every route of api/openapi.yaml to router.
// The paths are relative to baseURL plus any prefix router already carries,
// so an echo.Group for "/api/v1" takes an empty baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}
	orders := baseURL + "/orders"

	router.POST(orders, w.CreateOrder)
	router.GET(orders+"/:orderId", w.withOrderID(si.GetOrder))
	router.POST(orders+"/:orderId/approve", w.withOrderID(si.ApproveOrder))
	router.POST(orders+"/:orderId/reject", w.withOrderID(si.RejectOrder))
	router.POST(orders+"/:orderId/cancel", w.withOrderID(si.CancelOrder))
	router.POST(orders+"/:orderId/cancel/undo", w.withOrderID(si.UndoCancelOrder))
	router.POST(orders+"/:orderId/cancel/confirm", w.withOrderID(si.ConfirmCancelOrder))
	router.POST(orders+"/:orderId/revision", w.withOrderID(si.ReviseOrder))
	router.POST(orders+"/:orderId/revision/confirm", w.withOrderID(si.ConfirmRevision))
	router.POST(orders+"/:orderId/revision/reject", w.withOrderID(si.RejectRevision))
}
