package domain

import (
	"strings"
	"unicode"
)

const (
	DefaultProvince   = "WESTERN_CAPE"
	DefaultSuburb     = "Unknown"
	DefaultPostalCode = "8000"
)

// Courier province enumeration keyed by a lower-cased, punctuation-free province name.
var provinceCodes = map[string]string{
	"western cape":  "WESTERN_CAPE",
	"gauteng":       "GAUTENG",
	"kwazulu natal": "KWAZULU_NATAL",
	"free state":    "FREE_STATE",
	"limpopo":       "LIMPOPO",
	"mpumalanga":    "MPUMALANGA",
	"north west":    "NORTH_WEST",
	"northern cape": "NORTHERN_CAPE",
	"eastern cape":  "EASTERN_CAPE",
}

// Best-effort components of a free-text address.
type AddressParts struct {
	AddressLine string
	Suburb      string
	Province    string
	PostalCode  string
}

// NormalizeAddress splits a comma separated address into courier address fields.
//
// The expected shape is "line, suburb, province[, postal]". Anything it cannot
// recognize falls back to fixed defaults (suburb "Unknown", WESTERN_CAPE,
// postal code 8000), so the result is always usable but may be wrong.
func NormalizeAddress(address string) AddressParts {
	raw := strings.Split(address, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}

	out := AddressParts{
		AddressLine: strings.TrimSpace(address),
		Suburb:      DefaultSuburb,
		Province:    DefaultProvince,
		PostalCode:  DefaultPostalCode,
	}

	if len(parts) > 0 && parts[0] != "" {
		out.AddressLine = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		out.Suburb = parts[1]
	}
	if len(parts) > 2 {
		out.Province = ProvinceCode(stripDigits(parts[2]))
	}
	if pc := findPostalCode(address); pc != "" {
		out.PostalCode = pc
	}

	return out
}

// ProvinceCode maps a province name ("KwaZulu-Natal", "western cape") to its
// courier enum. Unknown names map to DefaultProvince.
func ProvinceCode(name string) string {
	key := strings.ToLower(strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	}), " "))

	if code, ok := provinceCodes[key]; ok {
		return code
	}

	// Already an enum value.
	for _, code := range provinceCodes {
		if strings.EqualFold(strings.TrimSpace(name), code) {
			return code
		}
	}

	return DefaultProvince
}

// South African postal codes are four digits and trail the address, so the
// last four-digit token wins over a leading street number.
func findPostalCode(address string) string {
	found := ""
	for _, tok := range strings.FieldsFunc(address, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	}) {
		if len(tok) != 4 {
			continue
		}
		if strings.IndexFunc(tok, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
			found = tok
		}
	}
	return found
}

func stripDigits(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s))
}
