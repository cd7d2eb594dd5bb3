package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

// Redis stores sessions in a shared Redis instance so that dialogues
// survive a restart and can be shared across replicas.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{Client: client, TTL: ttl}
}

func (r *Redis) key(sender string) string {
	return "session:" + sender
}

func (r *Redis) History(ctx context.Context, sender string) ([]models.Turn, error) {
	raw, err := r.Client.Get(ctx, r.key(sender)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var turns []models.Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *Redis) Append(ctx context.Context, sender string, turns ...models.Turn) error {
	history, err := r.History(ctx, sender)
	if err != nil {
		return err
	}
	history = append(history, turns...)
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, r.key(sender), raw, r.TTL).Err()
}

func (r *Redis) Clear(ctx context.Context, sender string) error {
	return r.Client.Del(ctx, r.key(sender)).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
