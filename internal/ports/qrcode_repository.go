package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

// Port: storage of issued QR codes.
type QRCodeRepository interface {
	Create(ctx context.Context, qr domain.QRCode) error
	// Return domain.ErrQRCodeNotFound when bagID was never issued.
	Get(ctx context.Context, bagID string) (domain.QRCode, error)
	// Return one page, newest first, and the total count.
	List(ctx context.Context, offset, limit int) ([]domain.QRCode, int, error)
	Stats(ctx context.Context) (domain.QRStats, error)
	Delete(ctx context.Context, bagID string) error
}
