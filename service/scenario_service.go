package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/metrics"
	"home-budget/repository"
)

var (
	ErrMissingSession  = errors.New("missing session")
	ErrInvalidSnapshot = errors.New("scenario input and result must be valid JSON")
)

type ScenarioService struct {
	repo   repository.ScenarioRepository
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

func NewScenarioService(repo repository.ScenarioRepository, logger *zap.Logger) *ScenarioService {
	return &ScenarioService{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger.Named("scenarios"),
	}
}

// Create snapshots input and result under a freshly generated ID.
func (s *ScenarioService) Create(
	ctx context.Context,
	sessionID string,
	name string,
	input json.RawMessage,
	result json.RawMessage,
) (domain.Scenario, error) {
	if sessionID == "" {
		return domain.Scenario{}, ErrMissingSession
	}
	if !json.Valid(input) || !json.Valid(result) {
		return domain.Scenario{}, ErrInvalidSnapshot
	}

	scenario := domain.Scenario{
		ID:        s.newID(),
		Name:      name,
		Input:     append(json.RawMessage(nil), input...),
		Result:    append(json.RawMessage(nil), result...),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Put(ctx, sessionID, scenario); err != nil {
		return domain.Scenario{}, fmt.Errorf("save scenario: %w", err)
	}
	metrics.ScenariosStored.Inc()
	s.logger.Debug("scenario stored", zap.String("scenario_id", scenario.ID))

	return scenario, nil
}

// Save marshals arbitrary values and stores them as a scenario.
func (s *ScenarioService) Save(
	ctx context.Context,
	sessionID string,
	name string,
	input any,
	result any,
) (domain.Scenario, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("marshal scenario input: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("marshal scenario result: %w", err)
	}
	return s.Create(ctx, sessionID, name, in, out)
}

func (s *ScenarioService) Get(ctx context.Context, sessionID, id string) (domain.Scenario, error) {
	if sessionID == "" {
		return domain.Scenario{}, ErrMissingSession
	}
	return s.repo.Get(ctx, sessionID, id)
}

func (s *ScenarioService) List(ctx context.Context, sessionID string) (map[string]domain.Scenario, error) {
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	return s.repo.List(ctx, sessionID)
}

func (s *ScenarioService) Delete(ctx context.Context, sessionID, id string) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	if err := s.repo.Delete(ctx, sessionID, id); err != nil {
		return err
	}
	metrics.ScenariosDeleted.Inc()
	return nil
}

func (s *ScenarioService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
