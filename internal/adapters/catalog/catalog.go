package catalog

import (
	"errors"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"strings"

	"github.com/spf13/viper"
)

// Catalog implements PointCatalog over a fixed list of partner points.
type Catalog struct {
	points []domain.Location
}

type pointConfig struct {
	Name          string  `mapstructure:"name"`
	Address       string  `mapstructure:"address"`
	Lat           float64 `mapstructure:"lat"`
	Lng           float64 `mapstructure:"lng"`
	BusinessHours string  `mapstructure:"business_hours"`
	Rating        float64 `mapstructure:"rating"`
}

// Default returns the built-in Cape Town catalog.
func Default() *Catalog {
	return New(builtinPoints)
}

func New(points []domain.Location) *Catalog {
	out := make([]domain.Location, 0, len(points))
	for _, p := range points {
		out = append(out, p.Normalized())
	}
	return &Catalog{points: out}
}

// Load reads a YAML (or any viper-supported) file with a top-level "points"
// list. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load points catalog %q: %w", path, err)
	}

	var cfg struct {
		Points []pointConfig `mapstructure:"points"`
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load points catalog %q: decode: %w", path, err)
	}
	if len(cfg.Points) == 0 {
		return nil, errors.New("load points catalog: no points defined")
	}

	points := make([]domain.Location, 0, len(cfg.Points))
	for i, p := range cfg.Points {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("load points catalog: point #%d: name cannot be empty", i+1)
		}
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return nil, fmt.Errorf("load points catalog: point %q: coordinates out of range", p.Name)
		}
		points = append(points, domain.Location{
			Lat:           p.Lat,
			Lng:           p.Lng,
			Name:          p.Name,
			Address:       p.Address,
			BusinessHours: p.BusinessHours,
			Rating:        p.Rating,
		})
	}

	return New(points), nil
}

// Points returns a copy of the catalog.
func (c *Catalog) Points() []domain.Location {
	return append([]domain.Location(nil), c.points...)
}
