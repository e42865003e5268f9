// Package handler contains the Echo handlers of the HTTP API.
package handler

import (
	"log/slog"
	"net/http"

	"waitline/config"
	"waitline/internal/delivery/http/response"
	"waitline/internal/domain/entity"
	"waitline/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TicketHandlerParams holds dependencies for TicketHandler, injected by Fx.
type TicketHandlerParams struct {
	fx.In

	TicketUC usecase.TicketUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// TicketHandler holds dependencies for guest-facing ticket handlers
type TicketHandler struct {
	ticketUC usecase.TicketUsecase
	config   *config.Config
	logger   *slog.Logger
}

// NewTicketHandler is the constructor for TicketHandler
func NewTicketHandler(params TicketHandlerParams) *TicketHandler {
	return &TicketHandler{
		ticketUC: params.TicketUC,
		config:   params.Config,
		logger:   params.Logger,
	}
}

// CreateTicketRequest represents the request body for joining a queue
type CreateTicketRequest struct {
	GuestName string `json:"guest_name" validate:"required,max=100"`
	PartySize int    `json:"party_size" validate:"required,min=1,max=99"`
	Source    string `json:"source" validate:"omitempty,oneof=qr kiosk"`
}

// PushSubscriptionRequest mirrors the browser's PushSubscription JSON shape
type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys"`
}

// CreateTicket handles a guest joining a store's queue
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ticket input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	source := entity.TicketSource(req.Source)
	if req.Source == "" {
		source = entity.SourceQR
	}

	view, err := h.ticketUC.CreateTicket(c.Request().Context(), &usecase.CreateTicketInput{
		StoreSlug: c.Param("slug"),
		GuestName: req.GuestName,
		PartySize: req.PartySize,
		Source:    source,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, view, "Ticket created")
}

// GetTicket handles the guest status page lookup
func (h *TicketHandler) GetTicket(c echo.Context) error {
	view, err := h.ticketUC.GetTicket(c.Request().Context(), c.Param("token"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// CancelTicket handles a guest withdrawing their own ticket
func (h *TicketHandler) CancelTicket(c echo.Context) error {
	view, err := h.ticketUC.CancelTicket(c.Request().Context(), c.Param("token"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "Ticket cancelled")
}

// RegisterPushSubscription stores the browser's push subscription for a ticket
func (h *TicketHandler) RegisterPushSubscription(c echo.Context) error {
	var req PushSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := h.ticketUC.RegisterPushSubscription(c.Request().Context(), c.Param("token"), &usecase.PushSubscriptionInput{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, nil, "Push subscription registered")
}

// GetVAPIDPublicKey exposes the server's VAPID public key so browsers can
// subscribe.
func (h *TicketHandler) GetVAPIDPublicKey(c echo.Context) error {
	publicKey := ""
	if h.config.Push != nil {
		publicKey = h.config.Push.VAPIDPublicKey
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"public_key": publicKey,
	}, "")
}
