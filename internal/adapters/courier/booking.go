package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

const (
	bookingType      = "EXPRESS_COURIER"
	pickUpDateLayout = "2006-01-02 15:04"
	pickUpLeadTime   = 24 * time.Hour
)

type bookingRequest struct {
	ServiceID        string            `json:"serviceId"`
	QuotesID         string            `json:"quotes_id"`
	PickUp           address           `json:"pickUp_address"`
	DropOff          address           `json:"dropOff_address"`
	Type             string            `json:"type"`
	PickUpDate       string            `json:"pickUpDate"`
	ParcelDimensions []parcelDimension `json:"parcelDimensions"`
}

// Book creates a shipment for the selected quote.
//
// The courier may answer HTTP 200 with a failed body, or a non-2xx status
// with a successful one, so the decision is made on the body alone. A body
// that does not decode, or a transport error, fails with
// domain.ErrBookingFailed. A decoded body is always returned; callers
// check Succeeded.
func (d *DropperClient) Book(
	ctx context.Context,
	j domain.ParcelJourney,
	q domain.Quote,
) (_ *domain.BookingConfirmation, err error) {
	defer obs.Time(ctx, "dropper.Book")(&err)

	if !q.Bookable() {
		return nil, fmt.Errorf("book bag_id=%s quote=%s: %w", j.BagID, q.ID, domain.ErrQuoteIncomplete)
	}

	payload, err := json.Marshal(d.bookingPayload(j, q))
	if err != nil {
		return nil, fmt.Errorf("book bag_id=%s: marshal request: %w", j.BagID, err)
	}

	req, err := d.newRequest(ctx, http.MethodPost, d.baseURL+"/create/book", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("book bag_id=%s: %w", j.BagID, err)
	}

	resp, err := d.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("book bag_id=%s: %w: %w", j.BagID, domain.ErrBookingFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("book bag_id=%s: read response: %w: %w", j.BagID, domain.ErrBookingFailed, err)
	}

	var bc domain.BookingConfirmation
	if err := json.Unmarshal(raw, &bc); err != nil {
		he := &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		return nil, fmt.Errorf("book bag_id=%s: decode response: %w: %w", j.BagID, domain.ErrBookingFailed, he)
	}

	if resp.StatusCode >= 300 {
		log.Printf("dropper booking bag_id=%s http_status=%d %s", j.BagID, resp.StatusCode, bc.String())
	}

	return &bc, nil
}

func (d *DropperClient) bookingPayload(j domain.ParcelJourney, q domain.Quote) bookingRequest {
	dims := domain.ShipmentDimensions(j.ParcelSize, j.NumberOfBoxes)
	parcels := make([]parcelDimension, 0, len(dims))
	for i, p := range dims {
		parcels = append(parcels, parcelDimension{
			Number:  strconv.Itoa(i + 1),
			Length:  p.LengthCm,
			Breadth: p.BreadthCm,
			Height:  p.HeightCm,
			Mass:    p.MassKg,
		})
	}

	pickUp := bookingAddress(j.FromLocation, j.Customer)
	pickUp.Comment = "Pick up from Sparcel point: " + j.FromLocation.Name

	dropOff := bookingAddress(j.ToLocation, j.Recipient)
	dropOff.Comment = "Drop off at Sparcel point: " + j.ToLocation.Name

	return bookingRequest{
		ServiceID:        q.ServiceID,
		QuotesID:         q.QuotesID,
		PickUp:           pickUp,
		DropOff:          dropOff,
		Type:             bookingType,
		PickUpDate:       d.now().Add(pickUpLeadTime).UTC().Format(pickUpDateLayout),
		ParcelDimensions: parcels,
	}
}

func bookingAddress(l domain.Location, c domain.Contact) address {
	l = l.Normalized()
	first, last := c.FirstLastName()
	return address{
		Province:    domain.ProvinceCode(l.Province),
		Suburb:      l.Suburb,
		AddressLine: l.DisplayAddress(),
		PostalCode:  l.PostalCode,
		Latitude:    coord(l.Lat),
		Longitude:   coord(l.Lng),
		Contact: &contact{
			FirstName: first,
			LastName:  last,
			Phone:     c.Phone,
			Email:     c.Email,
		},
	}
}
