package session

import (
	"context"
	"sync"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

// Memory is the default in-process store. A restart loses in-flight
// dialogues; the next message simply starts a fresh session.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]models.Turn
}

func NewMemory() *Memory {
	return &Memory{sessions: map[string][]models.Turn{}}
}

func (m *Memory) History(ctx context.Context, sender string) ([]models.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := m.sessions[sender]
	out := make([]models.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *Memory) Append(ctx context.Context, sender string, turns ...models.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sender] = append(m.sessions[sender], turns...)
	return nil
}

func (m *Memory) Clear(ctx context.Context, sender string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sender)
	return nil
}
