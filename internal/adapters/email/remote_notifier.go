package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// RemoteNotifier implements Notifier by delegating to a separate email
// service exposing POST /send-emails.
type RemoteNotifier struct {
	session *http.Client
	baseURL string
}

func NewRemoteNotifier(baseURL string) *RemoteNotifier {
	return &RemoteNotifier{
		session: &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *RemoteNotifier) SendBookingEmails(ctx context.Context, data domain.BookingEmailData) (_ domain.EmailResult, err error) {
	defer obs.Time(ctx, "email_service.SendBookingEmails")(&err)

	payload, err := json.Marshal(data)
	if err != nil {
		return domain.EmailResult{}, fmt.Errorf("send booking emails bag_id=%s: marshal: %w", data.BagID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/send-emails", bytes.NewReader(payload))
	if err != nil {
		return domain.EmailResult{}, fmt.Errorf("send booking emails bag_id=%s: create request: %w", data.BagID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.session.Do(req)
	if err != nil {
		return domain.EmailResult{}, fmt.Errorf("send booking emails bag_id=%s: %w", data.BagID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.EmailResult{}, fmt.Errorf("send booking emails bag_id=%s: %w", data.BagID,
			&httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))})
	}

	var result domain.EmailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.EmailResult{}, fmt.Errorf("send booking emails bag_id=%s: decode response: %w", data.BagID, err)
	}
	return result, nil
}
