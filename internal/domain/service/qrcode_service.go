package service

// QRCodeService generates the join QR code guests scan to register.
type QRCodeService interface {
	// GenerateJoinQR renders a PNG QR code pointing at a store's join URL.
	GenerateJoinQR(storeSlug string) ([]byte, error)

	// JoinURL returns the guest-facing join URL for a store.
	JoinURL(storeSlug string) string
}
