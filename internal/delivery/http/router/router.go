// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"waitline/internal/delivery/http/middleware"
	"waitline/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TicketHandler       *handler.TicketHandler
	StoreHandler        *handler.StoreHandler
	StaffHandler        *handler.StaffHandler
	StaffAuthMiddleware *middleware.StaffAuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	ticketHandler       *handler.TicketHandler
	storeHandler        *handler.StoreHandler
	staffHandler        *handler.StaffHandler
	staffAuthMiddleware *middleware.StaffAuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		ticketHandler:       params.TicketHandler,
		storeHandler:        params.StoreHandler,
		staffHandler:        params.StaffHandler,
		staffAuthMiddleware: params.StaffAuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Guest routes: no authentication, the ticket token is the credential.
	api.GET("/stores/:slug", r.storeHandler.GetStore)
	api.GET("/stores/:slug/qr", r.storeHandler.GetJoinQR)
	api.POST("/stores/:slug/tickets", r.ticketHandler.CreateTicket)
	api.GET("/tickets/:token", r.ticketHandler.GetTicket)
	api.POST("/tickets/:token/cancel", r.ticketHandler.CancelTicket)
	api.POST("/tickets/:token/push-subscriptions", r.ticketHandler.RegisterPushSubscription)
	api.GET("/push/vapid-public-key", r.ticketHandler.GetVAPIDPublicKey)

	// Staff routes
	staffGroup := api.Group("/staff")
	staffGroup.POST("/login", r.staffHandler.Login)

	storeGroup := staffGroup.Group("/stores/:storeId")
	storeGroup.Use(r.staffAuthMiddleware.Authenticate)
	{
		storeGroup.GET("/tickets", r.staffHandler.ListTickets)
		storeGroup.POST("/tickets/call-next", r.staffHandler.CallNext)
		storeGroup.POST("/tickets/:ticketId/call", r.staffHandler.CallTicket)
		storeGroup.POST("/tickets/:ticketId/seat", r.staffHandler.SeatTicket)
		storeGroup.POST("/tickets/:ticketId/skip", r.staffHandler.SkipTicket)
		storeGroup.POST("/tickets/:ticketId/cancel", r.staffHandler.CancelTicket)
		storeGroup.GET("/settings", r.staffHandler.GetSettings)
		storeGroup.PATCH("/settings", r.staffHandler.UpdateSettings)
		storeGroup.POST("/reset-numbering", r.staffHandler.ResetNumbering)
		storeGroup.POST("/print-jobs/:jobId/retry", r.staffHandler.RetryPrintJob)
	}
}
