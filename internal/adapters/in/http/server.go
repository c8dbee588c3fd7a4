package http

import (
	"context"
	"net/http"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/core/application/usecases/queries"
	"orderservice/internal/core/domain/model/kernel"
	"orderservice/internal/core/domain/model/order"
	"orderservice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (kernel.UUID, error)
	}
	ChangeOrderStateHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStateCommand) (*order.Order, error)
	}
	ReviseOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ReviseOrderCommand) (order.LineItemQuantityChange, error)
	}
	ConfirmRevisionHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmRevisionCommand) (order.LineItemQuantityChange, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the order use cases.
type Server struct {
	createOrderHandler      CreateOrderHandler
	changeOrderStateHandler ChangeOrderStateHandler
	reviseOrderHandler      ReviseOrderHandler
	confirmRevisionHandler  ConfirmRevisionHandler
	getOrderHandler         GetOrderHandler
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeOrderStateHandler ChangeOrderStateHandler,
	reviseOrderHandler ReviseOrderHandler,
	confirmRevisionHandler ConfirmRevisionHandler,
	getOrderHandler GetOrderHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		changeOrderStateHandler: changeOrderStateHandler,
		reviseOrderHandler:      reviseOrderHandler,
		confirmRevisionHandler:  confirmRevisionHandler,
		getOrderHandler:         getOrderHandler,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{OrderId: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return errorResponse(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(resp))
}

func (s *Server) ApproveOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.Approve)
}

func (s *Server) RejectOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.Reject)
}

func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.Cancel)
}

func (s *Server) UndoCancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.UndoPendingCancel)
}

func (s *Server) ConfirmCancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.NoteCancelled)
}

func (s *Server) RejectRevision(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.changeState(ctx, orderId, order.RejectRevision)
}

func (s *Server) changeState(ctx echo.Context, orderId openapi_types.UUID, op order.Operation) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStateCommand(id, op)
	if err != nil {
		return errorResponse(ctx, err)
	}

	o, err := s.changeOrderStateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderState{
		OrderId: o.ID().Bytes(),
		State:   o.State().String(),
		Version: o.Version(),
	})
}

// ReviseOrder handles POST /api/v1/orders/{orderId}/revision. The response
// carries the proposed totals; the stored line items are unchanged until the
// revision is confirmed.
func (s *Server) ReviseOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, revision, err := bindRevision(ctx, orderId)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewReviseOrderCommand(id, revision)
	if err != nil {
		return errorResponse(ctx, err)
	}

	change, err := s.reviseOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, revisionResult(orderId, order.RevisionPending, change))
}

// ConfirmRevision handles POST /api/v1/orders/{orderId}/revision/confirm.
// The body repeats the revision that was proposed.
func (s *Server) ConfirmRevision(ctx echo.Context, orderId openapi_types.UUID) error {
	id, revision, err := bindRevision(ctx, orderId)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewConfirmRevisionCommand(id, revision)
	if err != nil {
		return errorResponse(ctx, err)
	}

	change, err := s.confirmRevisionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, revisionResult(orderId, order.Approved, change))
}

func bindRevision(ctx echo.Context, orderId openapi_types.UUID) (kernel.UUID, order.OrderRevision, error) {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return kernel.UUID{}, order.OrderRevision{}, err
	}

	var body Revision
	if err = ctx.Bind(&body); err != nil {
		return kernel.UUID{}, order.OrderRevision{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	revision, err := newOrderRevision(body)
	if err != nil {
		return kernel.UUID{}, order.OrderRevision{}, err
	}

	return id, revision, nil
}
