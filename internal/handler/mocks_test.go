package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Yumichan48/foxrunner/internal/domain"
	"github.com/Yumichan48/foxrunner/internal/production"
)

// MockProductionService mocks the production.Service interface
type MockProductionService struct {
	mock.Mock
}

func (m *MockProductionService) CanCraft(ctx context.Context, recipeID string, quantity int) error {
	args := m.Called(ctx, recipeID, quantity)
	return args.Error(0)
}

func (m *MockProductionService) StartCrafting(ctx context.Context, recipeID string, quantity int) (domain.QueueItem, error) {
	args := m.Called(ctx, recipeID, quantity)
	return args.Get(0).(domain.QueueItem), args.Error(1)
}

func (m *MockProductionService) Cancel(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockProductionService) CancelAll(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

func (m *MockProductionService) Advance(ctx context.Context, now time.Time) int {
	args := m.Called(ctx, now)
	return args.Int(0)
}

func (m *MockProductionService) QueueSnapshot(now time.Time) []domain.QueueSnapshotEntry {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.QueueSnapshotEntry)
}

func (m *MockProductionService) UnlockRecipe(ctx context.Context, recipeID string) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

func (m *MockProductionService) UnlockStation(ctx context.Context, kind domain.StationKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

func (m *MockProductionService) UpgradeStation(ctx context.Context, kind domain.StationKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

func (m *MockProductionService) CompleteQuest(key string) {
	m.Called(key)
}

func (m *MockProductionService) MasteryLevel(kind domain.StationKind) (int, error) {
	args := m.Called(kind)
	return args.Int(0), args.Error(1)
}

func (m *MockProductionService) MasteryProgress(kind domain.StationKind) (domain.MasteryProgress, error) {
	args := m.Called(kind)
	return args.Get(0).(domain.MasteryProgress), args.Error(1)
}

func (m *MockProductionService) KnownRecipes() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockProductionService) Stats() production.Stats {
	args := m.Called()
	return args.Get(0).(production.Stats)
}

func (m *MockProductionService) ExportState() domain.EngineState {
	args := m.Called()
	return args.Get(0).(domain.EngineState)
}

func (m *MockProductionService) RestoreState(ctx context.Context, state domain.EngineState) {
	m.Called(ctx, state)
}
