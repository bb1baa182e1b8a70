package quest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

var _ userProgressRepo = &userProgressRepoMock{}

type userProgressRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
	AddGemsFunc     func(ctx context.Context, userID uuid.UUID, delta int) (int, error)

	calls struct {
		GetByUserID []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		AddGems []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Delta  int
		}
	}
	lock sync.RWMutex
}

func (mock *userProgressRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	if mock.GetByUserIDFunc == nil {
		panic("userProgressRepoMock.GetByUserIDFunc: method is nil but userProgressRepo.GetByUserID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lock.Lock()
	mock.calls.GetByUserID = append(mock.calls.GetByUserID, callInfo)
	mock.lock.Unlock()
	return mock.GetByUserIDFunc(ctx, userID)
}

func (mock *userProgressRepoMock) GetByUserIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GetByUserID
	mock.lock.RUnlock()
	return calls
}

func (mock *userProgressRepoMock) AddGems(ctx context.Context, userID uuid.UUID, delta int) (int, error) {
	if mock.AddGemsFunc == nil {
		panic("userProgressRepoMock.AddGemsFunc: method is nil but userProgressRepo.AddGems was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Delta  int
	}{Ctx: ctx, UserID: userID, Delta: delta}
	mock.lock.Lock()
	mock.calls.AddGems = append(mock.calls.AddGems, callInfo)
	mock.lock.Unlock()
	return mock.AddGemsFunc(ctx, userID, delta)
}

func (mock *userProgressRepoMock) AddGemsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Delta  int
} {
	mock.lock.RLock()
	calls := mock.calls.AddGems
	mock.lock.RUnlock()
	return calls
}
