package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/rs/zerolog"
)

// StateService moves the app state to and from a snapshot repository
type StateService struct {
	repo   domain.SnapshotRepository
	logger zerolog.Logger
}

// NewStateService creates a new StateService
func NewStateService(repo domain.SnapshotRepository, logger zerolog.Logger) *StateService {
	return &StateService{
		repo:   repo,
		logger: logger.With().Str("component", "state_service").Logger(),
	}
}

// Load returns the saved state. A missing snapshot yields the default state.
// A corrupt snapshot is discarded and also yields the default state, logged
// as ErrPersistenceCorrupt. Load never fails.
func (s *StateService) Load(ctx context.Context) *domain.AppState {
	state, err := s.LoadState(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Discarding saved state, starting from defaults")
		return domain.DefaultAppState()
	}
	return state
}

// LoadState is Load without the fallback on corrupt or unreadable snapshots
func (s *StateService) LoadState(ctx context.Context) (*domain.AppState, error) {
	payload, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			s.logger.Info().Msg("No saved state, starting from defaults")
			return domain.DefaultAppState(), nil
		}
		return nil, err
	}
	return DecodeState(payload)
}

// Save writes the state as a snapshot
func (s *StateService) Save(ctx context.Context, state *domain.AppState) error {
	payload, err := EncodeState(state)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, payload); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// EncodeState serializes the state to its snapshot form
func EncodeState(state *domain.AppState) ([]byte, error) {
	return json.Marshal(state)
}

// DecodeState parses a snapshot over the default state, so absent keys keep
// their defaults. Unparsable input returns ErrPersistenceCorrupt.
func DecodeState(payload []byte) (*domain.AppState, error) {
	state := domain.DefaultAppState()
	if err := json.Unmarshal(payload, state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceCorrupt, err)
	}

	if state.Theme != domain.ThemeLight {
		state.Theme = domain.ThemeDark
	}
	if state.Budget.IsNegative() || state.Budget.GreaterThan(domain.MaxAmount) {
		state.Budget = domain.DefaultAppState().Budget
	}
	if state.Expenses == nil {
		state.Expenses = []domain.ExpenseRecord{}
	}
	if state.Streak.Count < 0 {
		state.Streak.Count = 0
	}
	return state, nil
}
