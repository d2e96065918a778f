package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	fleet, err := s.getAllCouriersHandler.Handle(
		ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve couriers")
	}

	response := make([]CourierResponse, len(fleet))
	for i, row := range fleet {
		response[i] = CourierResponse{
			CourierID:           row.ID.String(),
			Name:                row.Name,
			Phone:               row.Phone,
			Online:              row.Online,
			Rating:              row.Rating,
			CompletedDeliveries: row.CompletedDeliveries,
			Balance:             row.Balance,
		}
		if row.Location != nil {
			response[i].Location = &GeoPointDTO{
				Lat: row.Location.Lat(), Lon: row.Location.Lon()}
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var request CreateCourierRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID := kernel.NewUUID()

	cmd, err := commands.NewCreateCourierCommand(
		courierID, request.Name, request.Phone, request.Rating)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, CreateCourierResponse{
		CourierID: courierID.String(),
	})
}

// UpdateCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var request UpdateLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	position, err := kernel.NewGeoPoint(request.Lat, request.Lon)
	if err != nil {
		return badRequest(ctx, "Invalid coordinates: "+err.Error())
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, position)
	if err != nil {
		return badRequest(ctx, "Invalid location update: "+err.Error())
	}

	err = s.updateLocationHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrCourierNotFound):
		return notFound(ctx, "Courier not found")
	case err != nil:
		return internalError(ctx, "Failed to update location")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetCourierStatus handles PUT /api/v1/couriers/:id/status.
func (s *Server) SetCourierStatus(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var request SetCourierStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCourierStatusCommand(courierID, request.Online)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	err = s.setCourierStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case errors.Is(err, commands.ErrCourierNotFound):
		return notFound(ctx, "Courier not found")
	case err != nil:
		return internalError(ctx, "Failed to update courier status")
	}

	return ctx.NoContent(http.StatusNoContent)
}
