package repository

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"home-budget/domain"
)

// ScenarioRepositoryMemory is an in-memory implementation of ScenarioRepository.
// Each session is one LRU entry; a write renews its TTL, like the Redis store does.
type ScenarioRepositoryMemory struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, map[string]domain.Scenario]
}

// NewScenarioRepositoryMemory keeps at most maxSessions sessions, each for sessionTTL
// after its last write. Zero means unbounded for either.
func NewScenarioRepositoryMemory(maxSessions int, sessionTTL time.Duration) *ScenarioRepositoryMemory {
	return &ScenarioRepositoryMemory{
		sessions: expirable.NewLRU[string, map[string]domain.Scenario](maxSessions, nil, sessionTTL),
	}
}

// Put stores the scenario under the session, replacing any scenario with the same ID.
func (r *ScenarioRepositoryMemory) Put(
	_ context.Context,
	sessionID string,
	scenario domain.Scenario,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.sessions.Get(sessionID)
	if !ok {
		bucket = make(map[string]domain.Scenario)
	}
	bucket[scenario.ID] = scenario
	r.sessions.Add(sessionID, bucket)
	return nil
}

func (r *ScenarioRepositoryMemory) Get(
	_ context.Context,
	sessionID, id string,
) (domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, _ := r.sessions.Peek(sessionID)
	s, ok := bucket[id]
	if !ok {
		return domain.Scenario{}, ErrScenarioNotFound
	}
	return s, nil
}

func (r *ScenarioRepositoryMemory) Delete(
	_ context.Context,
	sessionID, id string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, _ := r.sessions.Peek(sessionID)
	if _, ok := bucket[id]; !ok {
		return ErrScenarioNotFound
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		r.sessions.Remove(sessionID)
	}
	return nil
}

// List returns a copy of the session's scenarios keyed by ID.
func (r *ScenarioRepositoryMemory) List(
	_ context.Context,
	sessionID string,
) (map[string]domain.Scenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, _ := r.sessions.Peek(sessionID)
	out := make(map[string]domain.Scenario, len(bucket))
	maps.Copy(out, bucket)
	return out, nil
}

// Len is the number of live sessions.
func (r *ScenarioRepositoryMemory) Len() int {
	return r.sessions.Len()
}

func (r *ScenarioRepositoryMemory) Ping(context.Context) error {
	return nil
}
