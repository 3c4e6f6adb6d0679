package domain

import "strings"

type DeliveryCategory string

const (
	CategorySameDay   DeliveryCategory = "Same Day"
	CategoryOneTwo    DeliveryCategory = "1-2 Days"
	CategoryThreeFive DeliveryCategory = "3-5 Days"
	CategorySevenNine DeliveryCategory = "7-9 Days"
	CategoryStandard  DeliveryCategory = "Standard"
)

// Display order of delivery speed tiers, fastest first.
var CategoryOrder = []DeliveryCategory{
	CategorySameDay,
	CategoryOneTwo,
	CategoryThreeFive,
	CategorySevenNine,
	CategoryStandard,
}

// A priced delivery offer from one courier service tier.
// Quotes are only valid for the addresses and dimensions that produced them
// and are never persisted.
type Quote struct {
	ID                string           `json:"id"`
	ServiceID         string           `json:"service_id"`
	QuotesID          string           `json:"quotes_id"`
	Price             float64          `json:"price"`
	Currency          string           `json:"currency"`
	EstimatedDelivery string           `json:"estimated_delivery"`
	ServiceType       string           `json:"service_type"`
	Provider          string           `json:"provider"`
	DeliveryCategory  DeliveryCategory `json:"delivery_category"`
}

// Bookable reports whether the quote carries the identifiers the booking
// endpoint requires.
func (q Quote) Bookable() bool {
	return strings.TrimSpace(q.QuotesID) != "" && strings.TrimSpace(q.ServiceID) != ""
}

// ClassifyDelivery buckets a courier rate into a speed tier from its free-text
// service name and description. This is a keyword heuristic; anything it does
// not recognize is Standard.
func ClassifyDelivery(serviceName, description string) DeliveryCategory {
	name := strings.ToLower(serviceName)
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(name, "same day") || strings.Contains(name, "flash") || strings.Contains(desc, "same day"):
		return CategorySameDay
	case strings.Contains(name, "express") || strings.Contains(name, "overnight") || strings.Contains(desc, "next day"):
		return CategoryOneTwo
	case strings.Contains(name, "budget") || strings.Contains(desc, "3-5") || strings.Contains(desc, "2-5"):
		return CategoryThreeFive
	case strings.ContainsAny(desc, "789"):
		return CategorySevenNine
	default:
		return CategoryStandard
	}
}

// CheapestByCategory returns one quote per delivery category, the cheapest in
// that category, ordered by CategoryOrder. Ties keep the earliest quote so the
// result is deterministic for a given input order. Quotes with an unknown
// category are grouped under Standard.
func CheapestByCategory(quotes []Quote) []Quote {
	best := make(map[DeliveryCategory]Quote, len(CategoryOrder))
	for _, q := range quotes {
		cat := q.DeliveryCategory
		if !knownCategory(cat) {
			cat = CategoryStandard
		}

		cur, ok := best[cat]
		if !ok || q.Price < cur.Price {
			best[cat] = q
		}
	}

	out := make([]Quote, 0, len(best))
	for _, cat := range CategoryOrder {
		if q, ok := best[cat]; ok {
			out = append(out, q)
		}
	}
	return out
}

func FindQuote(quotes []Quote, id string) (Quote, bool) {
	for _, q := range quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

func knownCategory(c DeliveryCategory) bool {
	for _, k := range CategoryOrder {
		if k == c {
			return true
		}
	}
	return false
}
