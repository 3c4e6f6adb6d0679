package services

import (
	"context"
	"errors"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/ports"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []ports.Email
	fail map[string]bool
}

func (r *recordingSender) Send(ctx context.Context, e ports.Email) error {
	if r.fail[e.To] {
		return errors.New("send failed")
	}
	r.sent = append(r.sent, e)
	return nil
}

func emailData() domain.BookingEmailData {
	return domain.BookingEmailData{
		BagID:            "BAG1",
		TrackingNumber:   "TRK123",
		CourierCompany:   "Courier A",
		TrackingLink:     "https://track.example.com/TRK123",
		PickupLocation:   domain.EmailPoint{Name: "Long Street Hub", Address: "123 Long Street"},
		DeliveryLocation: domain.EmailPoint{Name: "Sea Point Center", Address: "156 Main Road"},
		Customer:         domain.EmailContact{Name: "Thandi <Mokoena>", Email: "thandi@example.com", Phone: "0821234567"},
		Recipient:        domain.EmailContact{Name: "Sipho Dlamini", Email: "sipho@example.com", Phone: "0831234567"},
		ParcelSize:       "medium",
		NumberOfBoxes:    2,
	}
}

func TestEmailDispatcherSendsBothEmails(t *testing.T) {
	sender := &recordingSender{}
	d := NewEmailDispatcher(sender)

	res, err := d.SendBookingEmails(context.Background(), emailData())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, domain.EmailsAllSent, res.Message)
	require.Len(t, sender.sent, 2)

	customer, recipient := sender.sent[0], sender.sent[1]
	assert.Equal(t, "thandi@example.com", customer.To)
	assert.Equal(t, "✅ Booking Confirmed - BAG1", customer.Subject)
	assert.Contains(t, customer.HTML, "Long Street Hub")
	assert.Contains(t, customer.HTML, "MEDIUM")
	assert.Contains(t, customer.HTML, "Track Your Parcel")

	assert.Equal(t, "sipho@example.com", recipient.To)
	assert.Equal(t, "📦 Parcel On The Way - TRK123", recipient.Subject)
	assert.Contains(t, recipient.HTML, "Hi Sipho Dlamini")
	assert.Contains(t, recipient.HTML, "Thandi &lt;Mokoena&gt;")
	assert.False(t, strings.Contains(recipient.HTML, "<Mokoena>"))
}

func TestEmailDispatcherFailuresAreIndependent(t *testing.T) {
	sender := &recordingSender{fail: map[string]bool{"thandi@example.com": true}}
	d := NewEmailDispatcher(sender)

	res, err := d.SendBookingEmails(context.Background(), emailData())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.CustomerEmailSent)
	assert.True(t, res.RecipientEmailSent)
	assert.Equal(t, domain.EmailsSomeFailed, res.Message)
}

func TestEmailDispatcherSkipsMissingAddress(t *testing.T) {
	sender := &recordingSender{}
	d := NewEmailDispatcher(sender)

	data := emailData()
	data.Recipient.Email = ""
	data.TrackingLink = ""

	res, err := d.SendBookingEmails(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, res.CustomerEmailSent)
	assert.False(t, res.RecipientEmailSent)
	require.Len(t, sender.sent, 1)
	assert.NotContains(t, sender.sent[0].HTML, "Track Your Parcel")
}
