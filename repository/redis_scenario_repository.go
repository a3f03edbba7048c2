package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"home-budget/domain"
)

const scenarioKeyPrefix = "home-budget:scenarios:"

// RedisScenarioRepository keeps one hash per session; the hash expires with the session.
type RedisScenarioRepository struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisScenarioRepository(client *redis.Client, sessionTTL time.Duration) *RedisScenarioRepository {
	return &RedisScenarioRepository{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(sessionID string) string {
	return scenarioKeyPrefix + sessionID
}

func (r *RedisScenarioRepository) Put(ctx context.Context, sessionID string, scenario domain.Scenario) error {
	payload, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("marshal scenario %s: %w", scenario.ID, err)
	}

	key := sessionKey(sessionID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, scenario.ID, payload)
		if r.sessionTTL > 0 {
			pipe.Expire(ctx, key, r.sessionTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store scenario %s: %w", scenario.ID, err)
	}
	return nil
}

func (r *RedisScenarioRepository) Get(ctx context.Context, sessionID, id string) (domain.Scenario, error) {
	raw, err := r.client.HGet(ctx, sessionKey(sessionID), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Scenario{}, ErrScenarioNotFound
	}
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("fetch scenario %s: %w", id, err)
	}

	var s domain.Scenario
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.Scenario{}, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return s, nil
}

func (r *RedisScenarioRepository) Delete(ctx context.Context, sessionID, id string) error {
	n, err := r.client.HDel(ctx, sessionKey(sessionID), id).Result()
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	if n == 0 {
		return ErrScenarioNotFound
	}
	return nil
}

func (r *RedisScenarioRepository) List(ctx context.Context, sessionID string) (map[string]domain.Scenario, error) {
	all, err := r.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}

	out := make(map[string]domain.Scenario, len(all))
	for id, raw := range all {
		var s domain.Scenario
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return nil, fmt.Errorf("decode scenario %s: %w", id, err)
		}
		out[id] = s
	}
	return out, nil
}

func (r *RedisScenarioRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
