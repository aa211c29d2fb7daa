package http

import (
	"errors"
	"net/http"
	"time"

	"bakeshop/internal/core/application/usecases/commands"
	"bakeshop/internal/core/application/usecases/queries"
	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
	"bakeshop/internal/core/domain/services"
	"bakeshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the order lifecycle over HTTP.
// It coordinates between HTTP handlers and application use cases; the actor
// role comes from the request after the auth layer in front resolved it.
type Server struct {
	// Command handlers
	placeOrderHandler       commands.PlaceOrderCommandHandler
	transitionHandler       *commands.RequestTransitionCommandHandler
	setPaymentStatusHandler commands.SetPaymentStatusCommandHandler

	// Query handlers
	getAvailabilityHandler queries.GetAvailabilityQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	transitionHandler *commands.RequestTransitionCommandHandler,
	setPaymentStatusHandler commands.SetPaymentStatusCommandHandler,
	getAvailabilityHandler queries.GetAvailabilityQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:       placeOrderHandler,
		transitionHandler:       transitionHandler,
		setPaymentStatusHandler: setPaymentStatusHandler,
		getAvailabilityHandler:  getAvailabilityHandler,
		getOrderHistoryHandler:  getOrderHistoryHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/transition", s.RequestTransition)
	api.PUT("/orders/:id/payment", s.SetPaymentStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/availability", s.GetAvailability)
}

// PlaceOrder handles POST /api/v1/orders - places a new pending order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID: "+err.Error())
	}

	slot, err := kernel.SlotFromStrings(req.Date, req.TimeBucket)
	if err != nil {
		return badRequest(ctx, "Invalid slot: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, customerID, slot)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlaceOrderResponse{OrderID: orderID.String()})
}

// RequestTransition handles POST /api/v1/orders/:id/transition.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	var actorID *kernel.UUID
	if req.ActorID != "" {
		id, idErr := kernel.UUIDFromString(req.ActorID)
		if idErr != nil {
			return badRequest(ctx, "Invalid actor ID: "+idErr.Error())
		}
		actorID = &id
	}

	cmd, err := commands.NewRequestTransitionCommand(
		orderID, target, kernel.Role(req.ActorRole), actorID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid transition request: "+err.Error())
	}

	result, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		OrderID:  orderID.String(),
		Previous: result.Previous.String(),
		New:      result.New.String(),
		NoOp:     result.NoOp,
	})
}

// SetPaymentStatus handles PUT /api/v1/orders/:id/payment - records the
// outcome reported by the payment collaborator.
func (s *Server) SetPaymentStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req PaymentStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	paymentStatus, err := order.PaymentStatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid payment status: "+err.Error())
	}

	cmd, err := commands.NewSetPaymentStatusCommand(orderID, paymentStatus)
	if err != nil {
		return badRequest(ctx, "Invalid payment request: "+err.Error())
	}

	if err := s.setPaymentStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailability handles GET /api/v1/availability?date=2006-01-02.
func (s *Server) GetAvailability(ctx echo.Context) error {
	date, err := time.Parse("2006-01-02", ctx.QueryParam("date"))
	if err != nil {
		return badRequest(ctx, "Invalid date: "+err.Error())
	}

	query, err := queries.NewGetAvailabilityQuery(date)
	if err != nil {
		return badRequest(ctx, "Invalid availability request: "+err.Error())
	}

	entries, err := s.getAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]SlotAvailability, len(entries))
	for i, entry := range entries {
		response[i] = SlotAvailability{
			Date:      entry.Date,
			Bucket:    entry.Bucket,
			Limit:     entry.Limit,
			Booked:    entry.Booked,
			Remaining: entry.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid history request: "+err.Error())
	}

	records, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]HistoryEntry, len(records))
	for i, record := range records {
		entry := HistoryEntry{
			Previous:   record.Previous.String(),
			New:        record.New.String(),
			ActorRole:  record.ActorRole.String(),
			Reason:     record.Reason,
			OccurredAt: record.OccurredAt.UTC().Format(time.RFC3339),
		}
		if record.ActorID != nil {
			entry.ActorID = record.ActorID.String()
		}
		response[i] = entry
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors to HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrPaymentNotConfirmed),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, commands.ErrSlotIsNotBookable):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
