// Package qrcode renders the join QR code guests scan at the entrance.
package qrcode

import (
	"fmt"
	"strings"

	"waitline/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// JoinURL returns the guest-facing join page for a store.
func (s *qrcodeService) JoinURL(slug string) string {
	return fmt.Sprintf("%s/stores/%s", s.baseURL, slug)
}

// GenerateJoinQR renders the join URL for a store as a PNG QR code.
func (s *qrcodeService) GenerateJoinQR(slug string) ([]byte, error) {
	qrCode, err := qrcode.New(s.JoinURL(slug), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
