package repository

import (
	"context"
	"errors"

	"home-budget/domain"
)

var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepository stores scenarios scoped by session token.
type ScenarioRepository interface {
	Put(ctx context.Context, sessionID string, scenario domain.Scenario) error
	Get(ctx context.Context, sessionID, id string) (domain.Scenario, error)
	Delete(ctx context.Context, sessionID, id string) error
	List(ctx context.Context, sessionID string) (map[string]domain.Scenario, error)
	Ping(ctx context.Context) error
}
