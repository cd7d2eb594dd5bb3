// Package geocode resolves a zone to coordinates so matchmaking can attach
// a radius filter. It is a soft dependency: any failure here degrades to a
// search without coordinates, never to a failed match.
package geocode

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("geocode not found")

type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat float64, lon float64, err error)
}

// BuildQuery assembles the free-text query for a city/province pair. The
// country is fixed: the service only operates in Argentina.
func BuildQuery(city, province string) string {
	parts := []string{}
	if c := strings.TrimSpace(city); c != "" {
		parts = append(parts, c)
	}
	if p := strings.TrimSpace(province); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, "Argentina")
	return strings.Join(parts, ", ")
}
