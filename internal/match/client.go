// Package match queries the provider directory for a just-completed ticket
// and re-ranks the candidates locally.
//
// The directory is a separately deployed service; its unavailability must
// degrade to "no matches found" rather than lose the ticket, which is
// already durable by the time matchmaking runs.
package match

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/JuanVergara-9/notification-service2/internal/geocode"
	"github.com/JuanVergara-9/notification-service2/internal/models"
)

const searchTimeout = 7 * time.Second

type Client struct {
	BaseURL  string
	RadiusKm float64
	Synonyms map[string]string
	Geocoder geocode.Geocoder
	HTTP     *http.Client
	Logger   zerolog.Logger
}

type searchResponse struct {
	Providers []providerItem `json:"providers"`
}

type providerItem struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	AvatarURL          string `json:"avatar_url"`
	Phone              string `json:"phone"`
	IsPro              bool   `json:"is_pro"`
	IdentityStatus     string `json:"identity_status"`
	EmergencyAvailable bool   `json:"emergency_available"`
}

// FindProviders runs the full matchmaking sequence for a completed ticket.
// It never returns an error: any transport or upstream failure yields an
// empty list.
func (c *Client) FindProviders(ctx context.Context, category, zone, urgency string) []models.MatchCandidate {
	if c.BaseURL == "" {
		c.Logger.Warn().Msg("provider directory url not configured, skipping matchmaking")
		return nil
	}

	table := c.Synonyms
	if table == nil {
		table = defaultSynonyms
	}
	slug, mapped := NormalizeCategory(table, category)
	city, province := SplitZone(zone)

	q := url.Values{}
	q.Set("city", city)
	if mapped {
		q.Set("category", slug)
	} else {
		q.Set("q", slug)
	}
	q.Set("urgency", urgency)
	q.Set("status", "active")
	q.Set("limit", "10")

	if c.Geocoder != nil {
		lat, lon, err := c.Geocoder.Geocode(ctx, geocode.BuildQuery(city, province))
		if err != nil {
			c.Logger.Debug().Err(err).Str("city", city).Msg("geocoding unavailable, searching without radius")
		} else {
			radius := c.RadiusKm
			if radius <= 0 {
				radius = 40
			}
			q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
			q.Set("lng", strconv.FormatFloat(lon, 'f', 6, 64))
			q.Set("radius", strconv.FormatFloat(radius, 'f', 1, 64))
		}
	}

	items, err := c.search(ctx, q)
	if err != nil {
		c.Logger.Error().Err(err).Str("city", city).Str("category", slug).Msg("provider search failed")
		return nil
	}

	candidates := make([]models.MatchCandidate, 0, len(items))
	for _, p := range items {
		candidates = append(candidates, models.MatchCandidate{
			ID:                 p.ID,
			Name:               p.Name,
			AvatarURL:          p.AvatarURL,
			ContactHandle:      p.Phone,
			IsPro:              p.IsPro,
			IdentityStatus:     p.IdentityStatus,
			EmergencyAvailable: p.EmergencyAvailable,
		})
	}
	return Rank(candidates, urgency)
}

func (c *Client) search(ctx context.Context, q url.Values) ([]providerItem, error) {
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: searchTimeout}
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	endpoint := c.BaseURL + "/api/providers/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("directory status %s", resp.Status)
	}

	var r searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	return r.Providers, nil
}
