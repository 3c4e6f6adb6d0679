package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(
	template.New("emails").
		Funcs(template.FuncMap{
			"upper": strings.ToUpper,
			"year":  func() int { return time.Now().Year() },
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// EmailDispatcher renders and sends the two booking confirmation emails.
// Each email is sent independently; one failing does not stop the other.
type EmailDispatcher struct {
	sender ports.EmailSender
}

func NewEmailDispatcher(sender ports.EmailSender) *EmailDispatcher {
	return &EmailDispatcher{sender: sender}
}

func CustomerSubject(d domain.BookingEmailData) string {
	return "✅ Booking Confirmed - " + d.BagID
}

func RecipientSubject(d domain.BookingEmailData) string {
	return "📦 Parcel On The Way - " + d.TrackingNumber
}

func (d *EmailDispatcher) SendBookingEmails(ctx context.Context, data domain.BookingEmailData) (res domain.EmailResult, err error) {
	defer obs.Time(ctx, "notify.SendBookingEmails")(&err)

	customerSent := d.send(ctx, data, data.Customer.Email, CustomerSubject(data), "customer_email.html")
	recipientSent := d.send(ctx, data, data.Recipient.Email, RecipientSubject(data), "recipient_email.html")

	res = domain.NewEmailResult(customerSent, recipientSent)
	obs.Logf(ctx, "notify bag_id=%s customer_sent=%t recipient_sent=%t", data.BagID, customerSent, recipientSent)
	return res, nil
}

func (d *EmailDispatcher) send(ctx context.Context, data domain.BookingEmailData, to, subject, tmpl string) bool {
	if strings.TrimSpace(to) == "" {
		obs.Logf(ctx, "notify bag_id=%s template=%s skipped: no email address", data.BagID, tmpl)
		return false
	}

	html, err := renderEmail(tmpl, data)
	if err != nil {
		obs.Logf(ctx, "notify bag_id=%s template=%s err=%v", data.BagID, tmpl, err)
		return false
	}

	if err := d.sender.Send(ctx, ports.Email{To: to, Subject: subject, HTML: html}); err != nil {
		obs.Logf(ctx, "notify bag_id=%s to=%s err=%v", data.BagID, to, err)
		return false
	}
	return true
}

func renderEmail(name string, data domain.BookingEmailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
