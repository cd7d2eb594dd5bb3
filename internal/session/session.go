// Package session stores in-flight conversation history per sender.
//
// A session exists only while a ticket is incomplete; the orchestrator
// clears it the moment a ticket is completed. Two concurrent messages from
// the same sender can still race on read-modify-write of the history; one
// human sender producing serialized messages makes that a tolerated risk.
package session

import (
	"context"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

type Store interface {
	History(ctx context.Context, sender string) ([]models.Turn, error)
	Append(ctx context.Context, sender string, turns ...models.Turn) error
	Clear(ctx context.Context, sender string) error
}
