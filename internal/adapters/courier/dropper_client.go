package courier

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.droppergroup.co.za/droppa/services/v1"

// DropperClient implements QuoteProvider and BookingProvider against the
// Dropper Group courier aggregator.
//
// The client is safe for concurrent use.
type DropperClient struct {
	session   *http.Client
	apiKey    string
	baseURL   string
	serviceID string
	now       func() time.Time
}

type Option func(*DropperClient)

func WithBaseURL(u string) Option {
	return func(d *DropperClient) { d.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(d *DropperClient) { d.session = c }
}

func WithClock(now func() time.Time) Option {
	return func(d *DropperClient) { d.now = now }
}

func NewDropperClient(apiKey, serviceID string, opts ...Option) (*DropperClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("dropper api key is empty")
	}
	if strings.TrimSpace(serviceID) == "" {
		return nil, errors.New("dropper service id is empty")
	}

	d := &DropperClient{
		session:   &http.Client{Timeout: 30 * time.Second},
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		serviceID: serviceID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

type address struct {
	Province    string   `json:"province"`
	Suburb      string   `json:"suburb"`
	AddressLine string   `json:"addressLine"`
	PostalCode  string   `json:"postalCode"`
	Latitude    string   `json:"latitude,omitempty"`
	Longitude   string   `json:"longitude,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	Contact     *contact `json:"contact,omitempty"`
}

type contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type parcelDimension struct {
	Number  string  `json:"parcel_number,omitempty"`
	Length  float64 `json:"parcel_length"`
	Breadth float64 `json:"parcel_breadth"`
	Height  float64 `json:"parcel_height"`
	Mass    float64 `json:"parcel_mass"`
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
