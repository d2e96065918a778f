package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateMerchant handles POST /api/v1/merchants.
func (s *Server) CreateMerchant(ctx echo.Context) error {
	var request CreateMerchantRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	merchantID := kernel.NewUUID()

	cmd, err := commands.NewCreateMerchantCommand(merchantID, request.Name)
	if err != nil {
		return badRequest(ctx, "Invalid merchant data: "+err.Error())
	}

	if err = s.createMerchantHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create merchant")
	}

	return ctx.JSON(http.StatusCreated, CreateMerchantResponse{
		MerchantID: merchantID.String(),
	})
}
