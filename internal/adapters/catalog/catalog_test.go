package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultCatalog(t *testing.T) {
	points := Default().Points()
	require.Len(t, points, 15)

	assert.Equal(t, "Long Street Hub", points[0].Name)
	assert.Equal(t, "WESTERN_CAPE", points[0].Province)
	assert.Equal(t, "Cape Town City Centre", points[0].Suburb)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Points(), 15)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "points.yaml", `
points:
  - name: Khayelitsha Mall Point
    address: Walter Sisulu Road, Khayelitsha, Western Cape, 7784
    lat: -34.0401
    lng: 18.6770
    business_hours: 9AM - 6PM
    rating: 4.3
  - name: Bellville Hub
    address: 1 Voortrekker Road, Bellville
    lat: -33.9022
    lng: 18.6292
`)

	c, err := Load(path)
	require.NoError(t, err)

	points := c.Points()
	require.Len(t, points, 2)
	assert.Equal(t, "Khayelitsha Mall Point", points[0].Name)
	assert.Equal(t, "9AM - 6PM", points[0].BusinessHours)
	assert.Equal(t, "7784", points[0].PostalCode)
	assert.InDelta(t, 18.6292, points[1].Lng, 1e-9)
}

func TestLoadRejectsInvalidCatalogs(t *testing.T) {
	tests := map[string]string{
		"empty":        "points: []\n",
		"no name":      "points:\n  - lat: -33.9\n    lng: 18.4\n",
		"bad latitude": "points:\n  - name: X\n    lat: -133.9\n    lng: 18.4\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "points.yaml", body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPointsReturnsCopy(t *testing.T) {
	c := Default()
	points := c.Points()
	points[0].Name = "changed"
	assert.Equal(t, "Long Street Hub", c.Points()[0].Name)
}
