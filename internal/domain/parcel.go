package domain

import (
	"fmt"
	"strings"
)

type ParcelSize string

const (
	SizeEnvelope ParcelSize = "envelope"
	SizeSmall    ParcelSize = "small"
	SizeMedium   ParcelSize = "medium"
	SizeLarge    ParcelSize = "large"
)

const (
	MinBoxes = 1
	MaxBoxes = 10
)

// Physical dimensions of a single box (centimeters, kilograms).
type ParcelDimensions struct {
	LengthCm  float64
	BreadthCm float64
	HeightCm  float64
	MassKg    float64
}

var sizeDimensions = map[ParcelSize]ParcelDimensions{
	SizeEnvelope: {LengthCm: 25, BreadthCm: 15, HeightCm: 2, MassKg: 0.5},
	SizeSmall:    {LengthCm: 30, BreadthCm: 20, HeightCm: 10, MassKg: 5},
	SizeMedium:   {LengthCm: 35, BreadthCm: 25, HeightCm: 15, MassKg: 9},
	SizeLarge:    {LengthCm: 45, BreadthCm: 35, HeightCm: 25, MassKg: 15},
}

func ParseParcelSize(s string) (ParcelSize, error) {
	size := ParcelSize(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sizeDimensions[size]; !ok {
		return "", fmt.Errorf("parse parcel size %q: %w", s, ErrInvalidInput)
	}
	return size, nil
}

func (s ParcelSize) Valid() bool {
	_, ok := sizeDimensions[s]
	return ok
}

// Dimensions of one box of this size. Unknown sizes fall back to medium.
func (s ParcelSize) Dimensions() ParcelDimensions {
	if d, ok := sizeDimensions[s]; ok {
		return d
	}
	return sizeDimensions[SizeMedium]
}

// Build the per-box dimension list for a shipment. Mixed box sizes are not
// supported: every box gets the same dimensions.
func ShipmentDimensions(size ParcelSize, boxes int) []ParcelDimensions {
	boxes = ClampBoxes(boxes)
	d := size.Dimensions()

	out := make([]ParcelDimensions, boxes)
	for i := range out {
		out[i] = d
	}
	return out
}

// Clamp a box count into [MinBoxes, MaxBoxes].
func ClampBoxes(n int) int {
	if n < MinBoxes {
		return MinBoxes
	}
	if n > MaxBoxes {
		return MaxBoxes
	}
	return n
}
