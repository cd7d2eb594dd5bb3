package match

import (
	"testing"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

func TestRankUrgentPutsEmergencyFirst(t *testing.T) {
	candidates := []models.MatchCandidate{
		{ID: "a", IsPro: false, EmergencyAvailable: true},
		{ID: "b", IsPro: true, EmergencyAvailable: false},
	}
	ranked := Rank(candidates, "alta")
	if ranked[0].ID != "a" {
		t.Fatalf("expected emergency candidate first for alta, got %s", ranked[0].ID)
	}
}

func TestRankNonUrgentPutsProFirst(t *testing.T) {
	candidates := []models.MatchCandidate{
		{ID: "a", IsPro: false, EmergencyAvailable: true},
		{ID: "b", IsPro: true, EmergencyAvailable: false},
	}
	ranked := Rank(candidates, "baja")
	if ranked[0].ID != "b" {
		t.Fatalf("expected pro candidate first for baja, got %s", ranked[0].ID)
	}
}

func TestRankPreservesDirectoryOrderAmongTies(t *testing.T) {
	candidates := []models.MatchCandidate{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
	}
	ranked := Rank(candidates, "media")
	if ranked[0].ID != "a" || ranked[1].ID != "b" || ranked[2].ID != "c" {
		t.Fatalf("expected stable order, got %+v", ranked)
	}
}

func TestRankCapsAtThree(t *testing.T) {
	candidates := []models.MatchCandidate{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}
	ranked := Rank(candidates, "alta")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(ranked))
	}
}

func TestIsUrgent(t *testing.T) {
	for _, u := range []string{"alta", "URGENTE", " Alta "} {
		if !IsUrgent(u) {
			t.Fatalf("expected %q to be urgent", u)
		}
	}
	if IsUrgent("media") {
		t.Fatalf("expected media not to be urgent")
	}
}
