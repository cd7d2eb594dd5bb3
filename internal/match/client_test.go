package match

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestFindProvidersReturnsEmptyOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Logger: zerolog.Nop()}
	got := c.FindProviders(context.Background(), "plomero", "San Rafael, Mendoza", "alta")
	if len(got) != 0 {
		t.Fatalf("expected empty result on upstream error, got %d", len(got))
	}
}

func TestFindProvidersReturnsEmptyOnUnreachableDirectory(t *testing.T) {
	c := &Client{BaseURL: "http://127.0.0.1:1", Logger: zerolog.Nop()}
	got := c.FindProviders(context.Background(), "plomero", "San Rafael", "baja")
	if len(got) != 0 {
		t.Fatalf("expected empty result when directory is unreachable, got %d", len(got))
	}
}

func TestFindProvidersMappedCategoryUsesSlugFilter(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Logger: zerolog.Nop()}
	c.FindProviders(context.Background(), "Electricista", "San Rafael, Mendoza", "alta")

	if got := query["category"]; len(got) != 1 || got[0] != "electricidad" {
		t.Fatalf("expected category=electricidad, got %v", query)
	}
	if got := query["city"]; len(got) != 1 || got[0] != "San Rafael" {
		t.Fatalf("expected city=San Rafael, got %v", query)
	}
	if got := query["status"]; len(got) != 1 || got[0] != "active" {
		t.Fatalf("expected status=active, got %v", query)
	}
	if got := query["limit"]; len(got) != 1 || got[0] != "10" {
		t.Fatalf("expected limit=10, got %v", query)
	}
}

func TestFindProvidersUnmappedCategoryUsesNameFilter(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(searchResponse{})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Logger: zerolog.Nop()}
	c.FindProviders(context.Background(), "Tapicero", "San Rafael", "baja")

	if _, ok := query["category"]; ok {
		t.Fatalf("expected no slug filter for unmapped category, got %v", query)
	}
	if got := query["q"]; len(got) != 1 || got[0] != "tapicero" {
		t.Fatalf("expected q=tapicero, got %v", query)
	}
}

func TestFindProvidersRanksAndCaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := searchResponse{Providers: []providerItem{
			{ID: "p1"},
			{ID: "p2", IsPro: true},
			{ID: "p3", EmergencyAvailable: true},
			{ID: "p4"},
			{ID: "p5"},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Logger: zerolog.Nop()}
	got := c.FindProviders(context.Background(), "plomero", "San Rafael, Mendoza", "urgente")
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0].ID != "p3" {
		t.Fatalf("expected emergency provider first, got %s", got[0].ID)
	}
	if got[1].ID != "p2" {
		t.Fatalf("expected pro provider second, got %s", got[1].ID)
	}
}

func TestFindProvidersSkipsWithoutBaseURL(t *testing.T) {
	c := &Client{Logger: zerolog.Nop()}
	if got := c.FindProviders(context.Background(), "plomero", "San Rafael", "alta"); got != nil {
		t.Fatalf("expected nil without a configured directory, got %v", got)
	}
}
