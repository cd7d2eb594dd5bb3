package match

import (
	"encoding/json"
	"os"
	"strings"
)

// defaultSynonyms maps the trade names people actually type to the
// directory's category slugs. An external JSON file can replace the table
// without a code change.
var defaultSynonyms = map[string]string{
	"electricista":  "electricidad",
	"plomero":       "plomeria",
	"plomería":      "plomeria",
	"gasista":       "gas",
	"cerrajero":     "cerrajeria",
	"cerrajería":    "cerrajeria",
	"pintor":        "pintura",
	"albañil":       "albanileria",
	"albanil":       "albanileria",
	"carpintero":    "carpinteria",
	"carpintería":   "carpinteria",
	"jardinero":     "jardineria",
	"jardinería":    "jardineria",
	"techista":      "techos",
	"herrero":       "herreria",
	"herrería":      "herreria",
	"climatizacion": "climatizacion",
	"climatización": "climatizacion",
	"aire acondicionado": "climatizacion",
	"limpieza":      "limpieza",
	"fletes":        "fletes",
	"flete":         "fletes",
	"mudanza":       "fletes",
}

// LoadSynonyms reads the synonym table from path, falling back to the
// built-in table when path is empty or unreadable.
func LoadSynonyms(path string) map[string]string {
	if path == "" {
		return defaultSynonyms
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return defaultSynonyms
	}
	table := map[string]string{}
	if err := json.Unmarshal(raw, &table); err != nil || len(table) == 0 {
		return defaultSynonyms
	}
	return table
}

// NormalizeCategory maps a free-form category to a directory slug. When the
// table has no entry the raw trimmed string comes back with ok=false and
// the caller uses it as a name filter instead of a slug filter.
func NormalizeCategory(table map[string]string, category string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(category))
	if slug, ok := table[c]; ok {
		return slug, true
	}
	return c, false
}

// SplitZone splits a free-form zone on the first comma into city and
// province. Only the city token is used as the primary directory filter.
func SplitZone(zone string) (city, province string) {
	parts := strings.SplitN(zone, ",", 2)
	city = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		province = strings.TrimSpace(parts[1])
	}
	return city, province
}
