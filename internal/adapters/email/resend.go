package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

const DefaultFrom = "Sparcel <onboarding@resend.dev>"

// ResendSender implements EmailSender on the Resend SDK.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("resend api key is empty")
	}
	if strings.TrimSpace(from) == "" {
		from = DefaultFrom
	}

	return &ResendSender{
		client: resend.NewCustomClient(&http.Client{Timeout: 15 * time.Second}, apiKey),
		from:   from,
	}, nil
}

// WithBaseURL points the client at another Resend API root.
func (r *ResendSender) WithBaseURL(baseURL string) (*ResendSender, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("resend base url %q: %w", baseURL, err)
	}
	r.client.BaseURL = u
	return r, nil
}

// Send submits one email. Any non-2xx response is an error.
func (r *ResendSender) Send(ctx context.Context, e ports.Email) (err error) {
	defer obs.Time(ctx, "resend.Send")(&err)

	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{e.To},
		Subject: e.Subject,
		Html:    e.HTML,
	})
	if err != nil {
		return fmt.Errorf("send email to=%s: %w", e.To, err)
	}
	obs.Logf(ctx, "resend accepted id=%s", sent.Id)
	return nil
}
