package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewQRBagID(t *testing.T) {
	now := time.UnixMilli(1735689600000)
	id := NewQRBagID(now)

	assert.Regexp(t, regexp.MustCompile(`^BAG[0-9A-Z]+$`), id)
	assert.Equal(t, "BAGM5D4RUO0", id[:11])
	assert.Len(t, id, 16)
	assert.NotEqual(t, id, NewQRBagID(now))
}

func TestNewBagID(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^SP[0-9A-Z]{6}$`), NewBagID())
}

func TestQRCodeURL(t *testing.T) {
	assert.Equal(t, "https://www.sparcel.co.za/?bag=BAG1", QRCodeURL("", "BAG1"))
	assert.Equal(t, "http://localhost:5173/?bag=BAG1", QRCodeURL("http://localhost:5173/", "BAG1"))
}
