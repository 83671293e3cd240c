// Package geocode resolves POI addresses to coordinates via the Google
// Geocoding API (primary, when configured) and an offline gazetteer
// (fallback), so route clustering works with or without network access.
package geocode

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a free-form address to coordinates. A nil Point with a
// nil error means the address did not match anything; that is not a failure.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Point, error)
}

// Provider is a single geocoding backend inside the cascade.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) (*Point, error)
}

// Option configures the cascade geocoder.
type Option func(*cascade)

// WithGoogleAPIKey enables the Google Geocoding API as the primary provider.
func WithGoogleAPIKey(key string) Option {
	return func(c *cascade) {
		if key != "" {
			c.providers = append([]Provider{newGoogleProvider(key, c.http)}, c.providers...)
		}
	}
}

// WithHTTPClient sets a custom HTTP client for network providers.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *cascade) {
		c.http = hc
	}
}

// WithGazetteer replaces the built-in city table, e.g. with one loaded from
// a populated-places shapefile.
func WithGazetteer(g *Gazetteer) Option {
	return func(c *cascade) {
		for i, p := range c.providers {
			if p.Name() == "gazetteer" {
				c.providers[i] = g
				return
			}
		}
		c.providers = append(c.providers, g)
	}
}

type cascade struct {
	providers []Provider
	http      *http.Client
}

// New creates a Geocoder that tries each provider in order until one
// matches. The built-in gazetteer is always the last resort.
func New(opts ...Option) Geocoder {
	c := &cascade{
		http:      &http.Client{Timeout: 10 * time.Second},
		providers: []Provider{DefaultGazetteer()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cascade) Geocode(ctx context.Context, address string) (*Point, error) {
	if address == "" {
		return nil, nil
	}
	for _, p := range c.providers {
		pt, err := p.Geocode(ctx, address)
		if err != nil {
			zap.L().Debug("geocode: provider failed",
				zap.String("provider", p.Name()),
				zap.String("address", address),
				zap.Error(err),
			)
			continue
		}
		if pt != nil {
			return pt, nil
		}
	}
	return nil, nil
}
