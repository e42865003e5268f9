package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"waitline/config"
	"waitline/internal/domain/service"
	"waitline/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   string        // Secret key for signing staff tokens.
	tokenTTL time.Duration // Time-to-live for staff tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &jwtService{
		secret:   cfg.Auth.JWTSecret,
		tokenTTL: ttl,
	}, nil
}

// IssueStaffToken creates a signed session token for a staff account.
func (s *jwtService) IssueStaffToken(staffID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": staffID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// VerifyStaffToken validates a token string and returns the staff account ID.
func (s *jwtService) VerifyStaffToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse staff token")
	}
	if !token.Valid {
		return uuid.Nil, errors.New("invalid staff token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "staff token missing subject")
	}

	staffID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "staff token subject is not a valid ID")
	}

	return staffID, nil
}
