package domain

import "testing"

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    AddressParts
	}{
		{
			name:    "full address",
			address: "12 Main Road, Claremont, Western Cape, 7708",
			want:    AddressParts{AddressLine: "12 Main Road", Suburb: "Claremont", Province: "WESTERN_CAPE", PostalCode: "7708"},
		},
		{
			name:    "province with postal code",
			address: "1 Jan Smuts Ave, Rosebank, Gauteng 2196, South Africa",
			want:    AddressParts{AddressLine: "1 Jan Smuts Ave", Suburb: "Rosebank", Province: "GAUTENG", PostalCode: "2196"},
		},
		{
			name:    "hyphenated province",
			address: "Shop 4, Umhlanga, KwaZulu-Natal",
			want:    AddressParts{AddressLine: "Shop 4", Suburb: "Umhlanga", Province: "KWAZULU_NATAL", PostalCode: DefaultPostalCode},
		},
		{
			name:    "street number is not a postal code",
			address: "123 Long Street, Cape Town City Centre",
			want:    AddressParts{AddressLine: "123 Long Street", Suburb: "Cape Town City Centre", Province: DefaultProvince, PostalCode: DefaultPostalCode},
		},
		{
			name:    "postal code trails street number",
			address: "1200 Main Rd, Muizenberg, Western Cape, 7945",
			want:    AddressParts{AddressLine: "1200 Main Rd", Suburb: "Muizenberg", Province: "WESTERN_CAPE", PostalCode: "7945"},
		},
		{
			name:    "single part",
			address: "Long Street Hub",
			want:    AddressParts{AddressLine: "Long Street Hub", Suburb: DefaultSuburb, Province: DefaultProvince, PostalCode: DefaultPostalCode},
		},
		{
			name:    "unknown province",
			address: "5 Dock Rd, V&A Waterfront, Atlantis",
			want:    AddressParts{AddressLine: "5 Dock Rd", Suburb: "V&A Waterfront", Province: DefaultProvince, PostalCode: DefaultPostalCode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.address); got != tt.want {
				t.Fatalf("NormalizeAddress(%q) = %+v, want %+v", tt.address, got, tt.want)
			}
		})
	}
}

func TestProvinceCode(t *testing.T) {
	tests := map[string]string{
		"Western Cape":  "WESTERN_CAPE",
		"north-west":    "NORTH_WEST",
		"EASTERN_CAPE":  "EASTERN_CAPE",
		"free   state":  "FREE_STATE",
		"":              DefaultProvince,
		"New Amsterdam": DefaultProvince,
	}
	for in, want := range tests {
		if got := ProvinceCode(in); got != want {
			t.Fatalf("ProvinceCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	longStreet := Coordinates{Lat: -33.9249, Lon: 18.4241}
	if d := longStreet.DistanceKm(longStreet); d != 0 {
		t.Fatalf("distance to self = %f, want 0", d)
	}

	// Cape Town city centre to Stellenbosch is roughly 40 km.
	stellenbosch := Coordinates{Lat: -33.9321, Lon: 18.8602}
	d := longStreet.DistanceKm(stellenbosch)
	if d < 38 || d > 42 {
		t.Fatalf("distance = %f km, want about 40", d)
	}
}
