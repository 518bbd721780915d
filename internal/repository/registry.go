package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playgrid/tictactoe-engine/internal/registry"
	"github.com/redis/go-redis/v9"
)

var ErrSnapshotNotFound = errors.New("registry snapshot not found")

// RegistryRepository persists the whole registry as one snapshot. A single
// SET per committed invocation is all the atomicity the engine needs: the
// host serializes invocations, so there is never a concurrent writer.
type RegistryRepository interface {
	Save(ctx context.Context, state *registry.Registry) error
	Load(ctx context.Context) (*registry.Registry, error)
}

type dbRegistry struct {
	client *redis.Client
	key    string
}

func NewRegistryRepository(client *redis.Client, key string) RegistryRepository {
	return &dbRegistry{
		client: client,
		key:    key,
	}
}

func (that *dbRegistry) Save(ctx context.Context, state *registry.Registry) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal registry: %w", err)
	}

	if err = that.client.Set(ctx, that.key, snapshot, 0).Err(); err != nil {
		return fmt.Errorf("failed to set registry snapshot: %w", err)
	}

	return nil
}

func (that *dbRegistry) Load(ctx context.Context) (*registry.Registry, error) {
	response, err := that.client.Get(ctx, that.key).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get registry snapshot: %w", err)
	}

	state := registry.New()
	if err = json.Unmarshal([]byte(response), state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry: %w", err)
	}

	return state, nil
}
