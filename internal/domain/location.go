package domain

// Represents a resolved pickup or delivery point.
// Province, Suburb and PostalCode are best-effort values produced by
// NormalizeAddress and are never authoritative.
type Location struct {
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	BusinessHours string  `json:"businessHours"`
	Rating        float64 `json:"rating"`
	Province      string  `json:"province,omitempty"`
	Suburb        string  `json:"suburb,omitempty"`
	PostalCode    string  `json:"postalCode,omitempty"`
	DistanceKm    float64 `json:"distance,omitempty"`
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Lon: l.Lng, Lat: l.Lat}
}

// Fill Province, Suburb and PostalCode from the free-text address when unset.
func (l Location) Normalized() Location {
	parts := NormalizeAddress(l.Address)
	if l.Province == "" {
		l.Province = parts.Province
	}
	if l.Suburb == "" {
		l.Suburb = parts.Suburb
	}
	if l.PostalCode == "" {
		l.PostalCode = parts.PostalCode
	}
	return l
}

// DisplayAddress falls back to the point name when no street address is known.
func (l Location) DisplayAddress() string {
	if l.Address != "" {
		return l.Address
	}
	return l.Name
}
