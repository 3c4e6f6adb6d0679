package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfirmation(t *testing.T, body string) *BookingConfirmation {
	t.Helper()
	var bc BookingConfirmation
	require.NoError(t, json.Unmarshal([]byte(body), &bc))
	return &bc
}

func TestBookingConfirmationSucceeded(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"all null with error code", `{"trackNo":null,"businessKey":null,"oid":null,"statusCode":500}`, false},
		{"track number", `{"trackNo":"TRK123","statusCode":500}`, true},
		{"business key only", `{"businessKey":"BK-9"}`, true},
		{"numeric oid", `{"oid":881234}`, true},
		{"status code only", `{"statusCode":200,"message":"created"}`, true},
		{"empty body", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeConfirmation(t, tt.body).Succeeded())
		})
	}

	var nilConfirmation *BookingConfirmation
	assert.False(t, nilConfirmation.Succeeded())
}

func TestBookingConfirmationReference(t *testing.T) {
	assert.Equal(t, "TRK123", decodeConfirmation(t, `{"trackNo":"TRK123","businessKey":"BK","oid":"1"}`).Reference())
	assert.Equal(t, "BK", decodeConfirmation(t, `{"trackNo":null,"businessKey":"BK","oid":"1"}`).Reference())
	assert.Equal(t, "77", decodeConfirmation(t, `{"oid":77}`).Reference())
	assert.Equal(t, NoTrackingNumber, decodeConfirmation(t, `{"statusCode":200}`).Reference())
}

func TestParcelJourneyConfirm(t *testing.T) {
	j := ParcelJourney{BagID: "BAG1", BookingStatus: BookingPending}
	bc := decodeConfirmation(t, `{"trackNo":"TRK123"}`)

	j.Confirm(bc, "")

	assert.Equal(t, BookingConfirmed, j.BookingStatus)
	assert.Equal(t, "TRK123", j.TrackingNumber)
	assert.Equal(t, DefaultCourier, j.CourierCompany)

	j.Confirm(bc, "The Courier Guy")
	assert.Equal(t, "The Courier Guy", j.CourierCompany)
}

func TestParcelJourneyValidate(t *testing.T) {
	j := ParcelJourney{
		BagID:        "BAG1",
		Customer:     Contact{Name: "Thandi Mokoena", Phone: "0821234567"},
		Recipient:    Contact{Name: "Sipho", Phone: "0831234567"},
		FromLocation: longStreet,
		ToLocation:   waterfront,
		ParcelSize:   SizeSmall,
	}
	require.NoError(t, j.Validate())

	j.Recipient.Phone = " "
	j.ParcelSize = ""
	err := j.Validate()
	require.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "recipient.phone")
	assert.Contains(t, err.Error(), "parcel_size")
}

func TestContactFirstLastName(t *testing.T) {
	first, last := Contact{Name: "Thandi van der Merwe"}.FirstLastName()
	assert.Equal(t, "Thandi", first)
	assert.Equal(t, "van der Merwe", last)

	first, last = Contact{Name: "Sipho"}.FirstLastName()
	assert.Equal(t, "Sipho", first)
	assert.Empty(t, last)
}
