package intent

import (
	"context"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

// Extractor judges whether an accumulated dialogue contains a complete
// service request, and if not, what to reply to keep collecting.
type Extractor interface {
	Extract(ctx context.Context, turns []models.Turn) (models.Extraction, error)
}
