package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

type Email struct {
	To      string
	Subject string
	HTML    string
}

// Contract for a transactional email API.
type EmailSender interface {
	Send(ctx context.Context, e Email) error
}

// Contract for delivering the two booking confirmation emails.
type Notifier interface {
	SendBookingEmails(ctx context.Context, data domain.BookingEmailData) (domain.EmailResult, error)
}
