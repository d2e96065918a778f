// Package http exposes the dispatch service over an echo HTTP API: order
// intake, administrative dispatch, courier self-service, the customer
// tracking view, and the Click payment webhook.
package http

import (
	"net/http"

	"dispatch/internal/adapters/out/click"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	dispatchOrderHandler     commands.DispatchOrderCommandHandler
	assignCourierHandler     commands.AssignCourierCommandHandler
	releaseOrderHandler      commands.ReleaseOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	createCourierHandler     commands.CreateCourierCommandHandler
	updateLocationHandler    commands.UpdateCourierLocationCommandHandler
	setCourierStatusHandler  commands.SetCourierStatusCommandHandler
	createMerchantHandler    commands.CreateMerchantCommandHandler
	processPaymentHandler    commands.ProcessPaymentCommandHandler

	trackOrderHandler      queries.TrackOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
	getAllCouriersHandler  queries.GetAllCouriersQueryHandler

	// paymentLinks is nil when Click checkout is not configured; order
	// creation then omits the payment URL.
	paymentLinks *click.LinkBuilder
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	dispatchOrderHandler commands.DispatchOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	releaseOrderHandler commands.ReleaseOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	setCourierStatusHandler commands.SetCourierStatusCommandHandler,
	createMerchantHandler commands.CreateMerchantCommandHandler,
	processPaymentHandler commands.ProcessPaymentCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	paymentLinks *click.LinkBuilder,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		dispatchOrderHandler:     dispatchOrderHandler,
		assignCourierHandler:     assignCourierHandler,
		releaseOrderHandler:      releaseOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		createCourierHandler:     createCourierHandler,
		updateLocationHandler:    updateLocationHandler,
		setCourierStatusHandler:  setCourierStatusHandler,
		createMerchantHandler:    createMerchantHandler,
		processPaymentHandler:    processPaymentHandler,
		trackOrderHandler:        trackOrderHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
		getAllCouriersHandler:    getAllCouriersHandler,
		paymentLinks:             paymentLinks,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/track", s.TrackOrder)

	api.POST("/admin/orders/:id/auto-dispatch", s.AutoDispatch)
	api.POST("/admin/orders/:id/assign", s.AssignCourier)
	api.POST("/admin/orders/:id/release", s.ReleaseOrder)

	api.PUT("/delivery/orders/:id", s.UpdateOrderStatus)

	api.POST("/payments/click", s.ClickWebhook)

	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/location", s.UpdateCourierLocation)
	api.PUT("/couriers/:id/status", s.SetCourierStatus)

	api.POST("/merchants", s.CreateMerchant)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
