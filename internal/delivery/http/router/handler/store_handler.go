package handler

import (
	"log/slog"
	"net/http"

	"waitline/internal/delivery/http/response"
	"waitline/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC usecase.StoreUsecase
	Logger  *slog.Logger
}

// StoreHandler holds dependencies for public store handlers
type StoreHandler struct {
	storeUC usecase.StoreUsecase
	logger  *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC: params.StoreUC,
		logger:  params.Logger,
	}
}

// GetStore handles the guest-facing store lookup
func (h *StoreHandler) GetStore(c echo.Context) error {
	view, err := h.storeUC.GetStoreBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// GetJoinQR serves the PNG QR code that links to the store's join page
func (h *StoreHandler) GetJoinQR(c echo.Context) error {
	png, err := h.storeUC.GenerateJoinQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
