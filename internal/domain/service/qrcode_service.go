package service

// QRCodeService defines the interface for product label QR codes
type QRCodeService interface {
	// GenerateProductQR returns a PNG encoding the public product page URL.
	GenerateProductQR(productID int64) ([]byte, error)
}
