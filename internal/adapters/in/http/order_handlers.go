package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// paymentMethodClick selects Click checkout on order creation.
const paymentMethodClick = "click"

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var destination *kernel.GeoPoint
	if request.Destination != nil {
		point, err := kernel.NewGeoPoint(request.Destination.Lat, request.Destination.Lon)
		if err != nil {
			return badRequest(ctx, "Invalid destination: "+err.Error())
		}
		destination = &point
	}

	var merchantID *kernel.UUID
	if request.MerchantID != "" {
		id, err := kernel.UUIDFromString(request.MerchantID)
		if err != nil {
			return badRequest(ctx, "Invalid merchant id")
		}
		merchantID = &id
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID, request.TotalAmount, request.DeliveryFee, destination, merchantID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create order")
	}

	response := CreateOrderResponse{OrderID: orderID.String()}
	if request.PaymentMethod == paymentMethodClick && s.paymentLinks != nil {
		response.PaymentURL = s.paymentLinks.PaymentLink(orderID.String(), request.TotalAmount)
	}

	return ctx.JSON(http.StatusCreated, response)
}

// AutoDispatch handles POST /api/v1/admin/orders/:id/auto-dispatch.
func (s *Server) AutoDispatch(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	result, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, errs.ErrVersionConflict) {
		// One retry. If a concurrent run took this order the retry reports
		// it as no longer dispatchable instead of a bare conflict.
		result, err = s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	}
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, commands.ErrOrderNotDispatchable):
		return conflict(ctx, "Order is not awaiting dispatch")
	case errors.Is(err, commands.ErrNoCouriers):
		return conflict(ctx, "No couriers registered")
	case errors.Is(err, commands.ErrNoOnlineCouriers):
		return conflict(ctx, "No online couriers available")
	case errors.Is(err, errs.ErrVersionConflict):
		return conflict(ctx, "Order was assigned concurrently")
	case err != nil:
		return internalError(ctx, "Failed to dispatch order")
	}

	return ctx.JSON(http.StatusOK, DispatchResponse{
		OrderID:     orderID.String(),
		CourierID:   result.CourierID,
		CourierName: result.CourierName,
		Score:       result.Score,
	})
}

// AssignCourier handles POST /api/v1/admin/orders/:id/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request AssignCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	err = s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, commands.ErrCourierNotFound):
		return notFound(ctx, "Courier not found")
	case errors.Is(err, order.ErrOrderAlreadyAssigned):
		return conflict(ctx, "Order already has a courier")
	case errors.Is(err, errs.ErrVersionConflict):
		return conflict(ctx, "Order was assigned concurrently")
	case err != nil:
		return internalError(ctx, "Failed to assign courier")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/admin/orders/:id/release.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewReleaseOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	err = s.releaseOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, order.ErrOrderNotAssigned):
		return conflict(ctx, "Order has no courier to release")
	case errors.Is(err, errs.ErrVersionConflict):
		return conflict(ctx, "Order changed concurrently")
	case err != nil:
		return internalError(ctx, "Failed to release order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PUT /api/v1/delivery/orders/:id.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, next, request.Force)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, errs.ErrValueIsInvalid):
		return conflict(ctx, "Transition not allowed")
	case errors.Is(err, errs.ErrVersionConflict):
		return conflict(ctx, "Order changed concurrently")
	case err != nil:
		return internalError(ctx, "Failed to update order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackOrder handles GET /api/v1/orders/:id/track.
func (s *Server) TrackOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewTrackOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	view, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return notFound(ctx, "Order not found")
	}
	if err != nil {
		return internalError(ctx, "Failed to track order")
	}

	response := TrackOrderResponse{
		OrderID:       view.OrderID.String(),
		Status:        view.Status,
		PaymentStatus: view.PaymentStatus,
		CourierName:   view.CourierName,
		CourierPhone:  view.CourierPhone,
		CreatedAt:     view.CreatedAt,
		FinishedAt:    view.FinishedAt,
	}
	if view.Destination != nil {
		response.Destination = &GeoPointDTO{
			Lat: view.Destination.Lat(), Lon: view.Destination.Lon()}
	}
	if view.CourierLocation != nil {
		response.CourierLocation = &GeoPointDTO{
			Lat: view.CourierLocation.Lat(), Lon: view.CourierLocation.Lon()}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	active, err := s.getActiveOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	response := make([]ActiveOrderResponse, len(active))
	for i, row := range active {
		response[i] = ActiveOrderResponse{
			OrderID:       row.ID.String(),
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalAmount:   row.TotalAmount,
			CreatedAt:     row.CreatedAt,
		}
		if row.CourierID != nil {
			response[i].CourierID = row.CourierID.String()
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{
		Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{
		Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code: http.StatusInternalServerError, Message: message})
}
