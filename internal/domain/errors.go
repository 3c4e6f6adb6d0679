package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoQuoteSelected   = errors.New("no delivery quote selected")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrQuoteIncomplete   = errors.New("quote is missing quotes id or service id")
	ErrQuotesUnavailable = errors.New("delivery quotes unavailable")
	ErrBookingFailed     = errors.New("delivery booking failed")
	ErrAlreadyConfigured = errors.New("bag already configured")
	ErrSessionNotFound   = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid journey state transition")
	ErrQRCodeNotFound    = errors.New("qr code not found")
	ErrLocationNotFound  = errors.New("location not found")
)
