package domain

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type QRStatus string

const (
	QRActive QRStatus = "active"
	QRUsed   QRStatus = "used"
)

const DefaultPublicBaseURL = "https://www.sparcel.co.za"

// A printed QR code carrying a bag id. A code is consumed (used) once its
// journey has been booked and persisted.
type QRCode struct {
	BagID       string     `json:"bag_id"`
	QRURL       string     `json:"qr_url"`
	ImageURL    string     `json:"image_url"`
	StoragePath string     `json:"storage_path,omitempty"`
	Status      QRStatus   `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

type QRStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Used   int `json:"used"`
	Unused int `json:"unused"`
}

// QRCodeURL is the link encoded in a bag's QR code.
func QRCodeURL(baseURL, bagID string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultPublicBaseURL
	}
	return base + "/?bag=" + url.QueryEscape(bagID)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewQRBagID generates a bag id for a pre-printed QR code: "BAG", the
// creation time in base36 millis, and five random base36 characters.
func NewQRBagID(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper("BAG" + ts + randomString(base36, 5))
}

// NewBagID generates a bag id for a journey configured without a QR code.
func NewBagID() string {
	return "SP" + randomString("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 6)
}

func randomString(alphabet string, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms.
			panic(err)
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String()
}
