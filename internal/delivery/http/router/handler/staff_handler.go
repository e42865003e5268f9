package handler

import (
	"context"
	"log/slog"
	"net/http"

	"waitline/internal/delivery/http/middleware"
	"waitline/internal/delivery/http/response"
	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StaffHandlerParams holds dependencies for StaffHandler, injected by Fx.
type StaffHandlerParams struct {
	fx.In

	StaffAuthUC  usecase.StaffAuthUsecase
	QueueAdminUC usecase.QueueAdminUsecase
	StoreUC      usecase.StoreUsecase
	PrintUC      usecase.PrintUsecase
	Logger       *slog.Logger
}

// StaffHandler holds dependencies for the staff dashboard handlers
type StaffHandler struct {
	staffAuthUC  usecase.StaffAuthUsecase
	queueAdminUC usecase.QueueAdminUsecase
	storeUC      usecase.StoreUsecase
	printUC      usecase.PrintUsecase
	logger       *slog.Logger
}

// NewStaffHandler is the constructor for StaffHandler
func NewStaffHandler(params StaffHandlerParams) *StaffHandler {
	return &StaffHandler{
		staffAuthUC:  params.StaffAuthUC,
		queueAdminUC: params.QueueAdminUC,
		storeUC:      params.StoreUC,
		printUC:      params.PrintUC,
		logger:       params.Logger,
	}
}

// LoginRequest represents the staff login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateSettingsRequest represents a partial store settings update
type UpdateSettingsRequest struct {
	Name                      *string `json:"name,omitempty"`
	NameEn                    *string `json:"name_en,omitempty"`
	IsOpen                    *bool   `json:"is_open,omitempty"`
	NotificationThresholdNear *int    `json:"notification_threshold_near,omitempty"`
	NotificationThresholdNext *int    `json:"notification_threshold_next,omitempty"`
	SkipRecoveryMode          *string `json:"skip_recovery_mode,omitempty"`
	PrintMethod               *string `json:"print_method,omitempty"`
	Timezone                  *string `json:"timezone,omitempty"`
}

// Login handles staff authentication
func (h *StaffHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.staffAuthUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token":   result.Token,
		"account": result.Account,
	}, "Logged in")
}

// ListTickets returns the dashboard ticket list for a store
func (h *StaffHandler) ListTickets(c echo.Context) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	tickets, err := h.queueAdminUC.ListTickets(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, tickets, "")
}

// CallNext calls the longest-waiting group
func (h *StaffHandler) CallNext(c echo.Context) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ticket, err := h.queueAdminUC.CallNext(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ticket, "Ticket called")
}

// CallTicket calls one specific waiting ticket
func (h *StaffHandler) CallTicket(c echo.Context) error {
	return h.ticketAction(c, h.queueAdminUC.CallTicket, "Ticket called")
}

// SeatTicket marks a called ticket as seated
func (h *StaffHandler) SeatTicket(c echo.Context) error {
	return h.ticketAction(c, h.queueAdminUC.SeatTicket, "Ticket seated")
}

// SkipTicket skips a called ticket
func (h *StaffHandler) SkipTicket(c echo.Context) error {
	return h.ticketAction(c, h.queueAdminUC.SkipTicket, "Ticket skipped")
}

// CancelTicket cancels a ticket on the guest's behalf
func (h *StaffHandler) CancelTicket(c echo.Context) error {
	return h.ticketAction(c, h.queueAdminUC.CancelTicket, "Ticket cancelled")
}

// GetSettings returns the store settings for the dashboard
func (h *StaffHandler) GetSettings(c echo.Context) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	store, err := h.storeUC.GetSettings(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store, "")
}

// UpdateSettings applies a partial settings update
func (h *StaffHandler) UpdateSettings(c echo.Context) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	input := &usecase.UpdateStoreSettingsInput{
		Name:                      req.Name,
		NameEn:                    req.NameEn,
		IsOpen:                    req.IsOpen,
		NotificationThresholdNear: req.NotificationThresholdNear,
		NotificationThresholdNext: req.NotificationThresholdNext,
		Timezone:                  req.Timezone,
	}
	if req.SkipRecoveryMode != nil {
		mode := entity.SkipRecoveryMode(*req.SkipRecoveryMode)
		input.SkipRecoveryMode = &mode
	}
	if req.PrintMethod != nil {
		method := entity.PrintMethod(*req.PrintMethod)
		input.PrintMethod = &method
	}

	store, err := h.storeUC.UpdateSettings(c.Request().Context(), storeID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, store, "Settings updated")
}

// ResetNumbering starts a new numbering epoch
func (h *StaffHandler) ResetNumbering(c echo.Context) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.storeUC.ResetNumbering(c.Request().Context(), storeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Numbering reset")
}

// RetryPrintJob re-dispatches a failed kiosk print job
func (h *StaffHandler) RetryPrintJob(c echo.Context) error {
	if _, err := h.authorizeStore(c); err != nil {
		return response.HandleAppError(c, err)
	}

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid print job ID")
	}

	job, err := h.printUC.RetryPrintJob(c.Request().Context(), jobID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, job, "Print job retried")
}

// ticketAction runs one staff queue action addressed by store and ticket ID.
func (h *StaffHandler) ticketAction(c echo.Context, action func(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error), message string) error {
	storeID, err := h.authorizeStore(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ticketID, err := uuid.Parse(c.Param("ticketId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid ticket ID")
	}

	ticket, err := action(c.Request().Context(), storeID, ticketID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ticket, message)
}

// authorizeStore parses the store ID from the path and checks the
// authenticated staff member's assignment for it.
func (h *StaffHandler) authorizeStore(c echo.Context) (uuid.UUID, error) {
	account, ok := middleware.GetStaffAccount(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid store ID")
	}

	if _, err := h.staffAuthUC.Authorize(c.Request().Context(), account.ID, storeID); err != nil {
		return uuid.Nil, err
	}

	return storeID, nil
}
