package intent

import (
	"context"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

// Mock completes a request once the dialogue reaches MinTurns user turns.
// Used in local runs without a model API key.
type Mock struct {
	MinTurns int
}

func (m Mock) Extract(ctx context.Context, turns []models.Turn) (models.Extraction, error) {
	minTurns := m.MinTurns
	if minTurns <= 0 {
		minTurns = 2
	}

	userTurns := 0
	lastText := ""
	for _, t := range turns {
		if t.Role == models.RoleUser {
			userTurns++
			lastText = t.Text
		}
	}

	if userTurns < minTurns {
		return models.Extraction{
			IsComplete:    false,
			ReplyToClient: "¿Me contás un poco más? Necesito saber el oficio, el problema, tu zona y qué tan urgente es.",
		}, nil
	}

	return models.Extraction{
		IsComplete: true,
		Data: models.TicketDraft{
			Category:    "plomeria",
			Description: lastText,
			Zone:        "San Rafael, Mendoza",
			Urgency:     "media",
		},
	}, nil
}
