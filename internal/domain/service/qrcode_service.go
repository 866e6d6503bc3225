package service

// QRCodeService defines the interface for QR code rendering.
type QRCodeService interface {
	// GenerateContactQR renders the given contact deep link as a PNG image.
	GenerateContactQR(link string) ([]byte, error)
}
