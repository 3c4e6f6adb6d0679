package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

const currencyZAR = "ZAR"

type quoteRequest struct {
	PickUp           address           `json:"pickUp_address"`
	DropOff          address           `json:"dropOff_address"`
	ParcelDimensions []parcelDimension `json:"parcelDimensions"`
}

type quoteResponse struct {
	QuotesID string `json:"quotes_id"`
	Quotes   []struct {
		CompanyName string `json:"companyName"`
		Rates       []struct {
			Type         string  `json:"type"`
			ServiceName  string  `json:"service_name"`
			Description  string  `json:"description"`
			Amount       float64 `json:"amount"`
			DeliveryDate string  `json:"deliveryDate"`
		} `json:"rates"`
	} `json:"quotes"`
}

// GetQuotes prices the shipment. Any non-2xx status or undecodable body fails
// with domain.ErrQuotesUnavailable; no placeholder quotes are ever returned.
func (d *DropperClient) GetQuotes(ctx context.Context, req ports.QuoteRequest) (_ []domain.Quote, err error) {
	defer obs.Time(ctx, "dropper.GetQuotes")(&err)

	if len(req.Parcels) == 0 {
		return nil, fmt.Errorf("get quotes: no parcels: %w", domain.ErrInvalidInput)
	}

	body := quoteRequest{
		PickUp:           quoteAddress(req.Pickup),
		DropOff:          quoteAddress(req.Dropoff),
		ParcelDimensions: make([]parcelDimension, 0, len(req.Parcels)),
	}
	for _, p := range req.Parcels {
		body.ParcelDimensions = append(body.ParcelDimensions, parcelDimension{
			Length:  p.LengthCm,
			Breadth: p.BreadthCm,
			Height:  p.HeightCm,
			Mass:    p.MassKg,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("get quotes: marshal request: %w", err)
	}

	httpReq, err := d.newRequest(ctx, http.MethodPost, d.baseURL+"/quotes", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("get quotes: %w", err)
	}

	resp, err := d.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get quotes: %w: %w", domain.ErrQuotesUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("get quotes: decode response: %w: %w", domain.ErrQuotesUnavailable, err)
	}

	quotes := make([]domain.Quote, 0)
	for _, company := range decoded.Quotes {
		provider := company.CompanyName
		if provider == "" {
			provider = "Unknown"
		}

		for _, rate := range company.Rates {
			name := firstNonEmpty(rate.ServiceName, rate.Type)

			quotes = append(quotes, domain.Quote{
				ID:                fmt.Sprintf("%s-%s-%s", provider, rate.Type, uuid.NewString()[:8]),
				ServiceID:         d.serviceID,
				QuotesID:          decoded.QuotesID,
				Price:             rate.Amount,
				Currency:          currencyZAR,
				EstimatedDelivery: firstNonEmpty(rate.DeliveryDate, "1-2 days"),
				ServiceType:       firstNonEmpty(name, "Standard"),
				Provider:          provider,
				DeliveryCategory:  domain.ClassifyDelivery(name, rate.Description),
			})
		}
	}

	return quotes, nil
}

func quoteAddress(l domain.Location) address {
	parts := domain.NormalizeAddress(l.Address)
	if strings.TrimSpace(l.Address) == "" {
		parts.AddressLine = l.Name
	}
	return address{
		Province:    parts.Province,
		Suburb:      parts.Suburb,
		AddressLine: parts.AddressLine,
		PostalCode:  parts.PostalCode,
		Latitude:    coord(l.Lat),
		Longitude:   coord(l.Lng),
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
