package services

import (
	"fmt"
	"net/url"
	"sparcel-journey-service/internal/domain"
	"strconv"
	"strings"
)

const (
	PayFastSandboxURL     = "https://sandbox.payfast.co.za/eng/process"
	PayFastSandboxID      = "10000100"
	PayFastSandboxKey     = "46f0cd694581a"
	defaultCheckoutOrigin = domain.DefaultPublicBaseURL
)

// PayFastConfig holds the merchant credentials for the hosted payment form.
type PayFastConfig struct {
	ProcessURL  string
	MerchantID  string
	MerchantKey string
	// Public origin of the site, used for the return/cancel/notify URLs.
	SiteURL string
}

func (c PayFastConfig) withDefaults() PayFastConfig {
	if c.ProcessURL == "" {
		c.ProcessURL = PayFastSandboxURL
	}
	if c.MerchantID == "" {
		c.MerchantID = PayFastSandboxID
	}
	if c.MerchantKey == "" {
		c.MerchantKey = PayFastSandboxKey
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	if c.SiteURL == "" {
		c.SiteURL = defaultCheckoutOrigin
	}
	return c
}

// CheckoutForm is a hosted payment form: the client posts Fields to Action.
type CheckoutForm struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
}

// BuildPayFastForm returns the hidden fields for paying q. Payment itself is
// handled entirely by PayFast.
func BuildPayFastForm(cfg PayFastConfig, q domain.Quote, bagID string, size domain.ParcelSize) (CheckoutForm, error) {
	if q.Price < 0 {
		return CheckoutForm{}, fmt.Errorf("build checkout form: negative price: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(bagID) == "" {
		return CheckoutForm{}, fmt.Errorf("build checkout form: empty bag id: %w", domain.ErrInvalidInput)
	}
	cfg = cfg.withDefaults()

	item := string(size)
	if item == "" {
		item = "Parcel"
	}

	return CheckoutForm{
		Action: cfg.ProcessURL,
		Method: "post",
		Fields: map[string]string{
			"merchant_id":  cfg.MerchantID,
			"merchant_key": cfg.MerchantKey,
			"amount":       strconv.FormatFloat(q.Price, 'f', 2, 64),
			"item_name":    "Sparcel Delivery - " + item,
			"return_url":   cfg.SiteURL + "/checkout?payment=success&bag=" + url.QueryEscape(bagID),
			"cancel_url":   cfg.SiteURL + "/checkout?payment=cancelled",
			"notify_url":   cfg.SiteURL + "/api/payfast/notify",
		},
	}, nil
}
