package match

import (
	"sort"
	"strings"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

const maxCandidates = 3

// IsUrgent reports whether an urgency value should promote
// emergency-available providers.
func IsUrgent(urgency string) bool {
	u := strings.ToLower(strings.TrimSpace(urgency))
	return u == "alta" || u == "urgente"
}

// Rank re-orders the directory's candidates locally and caps the result.
// Precedence: emergency availability (only for urgent requests), then the
// pro flag, otherwise the directory's original relative order. Both passes
// are stable so earlier criteria survive later ones.
func Rank(candidates []models.MatchCandidate, urgency string) []models.MatchCandidate {
	out := make([]models.MatchCandidate, len(candidates))
	copy(out, candidates)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsPro && !out[j].IsPro
	})
	if IsUrgent(urgency) {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EmergencyAvailable && !out[j].EmergencyAvailable
		})
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}
