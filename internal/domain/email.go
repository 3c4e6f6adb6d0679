package domain

import "fmt"

type EmailPoint struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type EmailContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Everything both confirmation emails need.
type BookingEmailData struct {
	BagID            string       `json:"bag_id"`
	TrackingNumber   string       `json:"tracking_number"`
	CourierCompany   string       `json:"courier_company"`
	TrackingLink     string       `json:"tracking_link,omitempty"`
	PickupLocation   EmailPoint   `json:"pickup_location"`
	DeliveryLocation EmailPoint   `json:"delivery_location"`
	Customer         EmailContact `json:"customer"`
	Recipient        EmailContact `json:"recipient"`
	ParcelSize       string       `json:"parcel_size"`
	NumberOfBoxes    int          `json:"number_of_boxes"`
}

// Per-recipient outcome of a notification dispatch.
type EmailResult struct {
	Success            bool   `json:"success"`
	CustomerEmailSent  bool   `json:"customer_email_sent"`
	RecipientEmailSent bool   `json:"recipient_email_sent"`
	Message            string `json:"message"`
}

const (
	EmailsAllSent     = "Both emails sent successfully"
	EmailsSomeFailed  = "Some emails failed to send"
	pointNameFallback = "%s Location"
	noAddress         = "Address not available"
)

func NewEmailResult(customerSent, recipientSent bool) EmailResult {
	r := EmailResult{
		Success:            customerSent && recipientSent,
		CustomerEmailSent:  customerSent,
		RecipientEmailSent: recipientSent,
		Message:            EmailsSomeFailed,
	}
	if r.Success {
		r.Message = EmailsAllSent
	}
	return r
}

// EmailData builds the notification payload for a booked journey.
func (j ParcelJourney) EmailData() BookingEmailData {
	link := ""
	if j.BookingConfirmation != nil {
		link = j.BookingConfirmation.Link
	}
	return BookingEmailData{
		BagID:            j.BagID,
		TrackingNumber:   j.TrackingNumber,
		CourierCompany:   j.CourierCompany,
		TrackingLink:     link,
		PickupLocation:   emailPoint(j.FromLocation, "Pickup"),
		DeliveryLocation: emailPoint(j.ToLocation, "Delivery"),
		Customer:         EmailContact{Name: j.Customer.Name, Email: j.Customer.Email, Phone: j.Customer.Phone},
		Recipient:        EmailContact{Name: j.Recipient.Name, Email: j.Recipient.Email, Phone: j.Recipient.Phone},
		ParcelSize:       string(j.ParcelSize),
		NumberOfBoxes:    j.NumberOfBoxes,
	}
}

func emailPoint(l Location, kind string) EmailPoint {
	p := EmailPoint{Name: l.Name, Address: l.Address}
	if p.Name == "" {
		p.Name = fmt.Sprintf(pointNameFallback, kind)
	}
	if p.Address == "" {
		p.Address = noAddress
	}
	return p
}
