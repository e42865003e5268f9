package middleware

import (
	"strings"

	"waitline/internal/delivery/http/response"
	"waitline/internal/domain/entity"
	"waitline/internal/usecase"

	"github.com/labstack/echo/v4"
)

const staffAccountKey = "staff_account"

// StaffAuthMiddleware authenticates staff dashboard requests.
type StaffAuthMiddleware struct {
	staffAuthUC usecase.StaffAuthUsecase
}

// NewStaffAuthMiddleware is the constructor for StaffAuthMiddleware.
func NewStaffAuthMiddleware(staffAuthUC usecase.StaffAuthUsecase) *StaffAuthMiddleware {
	return &StaffAuthMiddleware{staffAuthUC: staffAuthUC}
}

// Authenticate validates the Bearer token and stores the staff account on
// the request context.
func (m *StaffAuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		account, err := m.staffAuthUC.Authenticate(c.Request().Context(), tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}

		c.Set(staffAccountKey, account)

		return next(c)
	}
}

// GetStaffAccount extracts the authenticated staff account from the context.
func GetStaffAccount(c echo.Context) (*entity.StaffAccount, bool) {
	account, ok := c.Get(staffAccountKey).(*entity.StaffAccount)

	return account, ok
}
