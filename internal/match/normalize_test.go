package match

import "testing"

func TestNormalizeCategoryMapped(t *testing.T) {
	slug, ok := NormalizeCategory(defaultSynonyms, "Electricista")
	if !ok || slug != "electricidad" {
		t.Fatalf("expected electricidad slug, got %q ok=%v", slug, ok)
	}
}

func TestNormalizeCategoryUnmappedFallsBackToName(t *testing.T) {
	name, ok := NormalizeCategory(defaultSynonyms, "  Tapicero  ")
	if ok {
		t.Fatalf("expected unmapped category")
	}
	if name != "tapicero" {
		t.Fatalf("expected trimmed lowercase raw value, got %q", name)
	}
}

func TestSplitZone(t *testing.T) {
	city, province := SplitZone("San Rafael, Mendoza")
	if city != "San Rafael" || province != "Mendoza" {
		t.Fatalf("unexpected split: %q / %q", city, province)
	}

	city, province = SplitZone("Godoy Cruz")
	if city != "Godoy Cruz" || province != "" {
		t.Fatalf("expected city only, got %q / %q", city, province)
	}
}

func TestLoadSynonymsFallsBackWhenPathMissing(t *testing.T) {
	table := LoadSynonyms("/nonexistent/synonyms.json")
	if table["plomero"] != "plomeria" {
		t.Fatalf("expected built-in table fallback")
	}
}
