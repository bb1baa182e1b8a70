package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

var _ achievementRepo = &achievementRepoMock{}

type achievementRepoMock struct {
	UnlockFunc func(ctx context.Context, userID uuid.UUID, ids []domain.AchievementID) ([]domain.AchievementID, error)
	HeldFunc   func(ctx context.Context, userID uuid.UUID) (map[domain.AchievementID]bool, error)

	calls struct {
		Unlock []struct {
			Ctx    context.Context
			UserID uuid.UUID
			IDs    []domain.AchievementID
		}
		Held []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *achievementRepoMock) Unlock(ctx context.Context, userID uuid.UUID, ids []domain.AchievementID) ([]domain.AchievementID, error) {
	if mock.UnlockFunc == nil {
		panic("achievementRepoMock.UnlockFunc: method is nil but achievementRepo.Unlock was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		IDs    []domain.AchievementID
	}{Ctx: ctx, UserID: userID, IDs: ids}
	mock.lock.Lock()
	mock.calls.Unlock = append(mock.calls.Unlock, callInfo)
	mock.lock.Unlock()
	return mock.UnlockFunc(ctx, userID, ids)
}

func (mock *achievementRepoMock) UnlockCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	IDs    []domain.AchievementID
} {
	mock.lock.RLock()
	calls := mock.calls.Unlock
	mock.lock.RUnlock()
	return calls
}

func (mock *achievementRepoMock) Held(ctx context.Context, userID uuid.UUID) (map[domain.AchievementID]bool, error) {
	if mock.HeldFunc == nil {
		panic("achievementRepoMock.HeldFunc: method is nil but achievementRepo.Held was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lock.Lock()
	mock.calls.Held = append(mock.calls.Held, callInfo)
	mock.lock.Unlock()
	return mock.HeldFunc(ctx, userID)
}

func (mock *achievementRepoMock) HeldCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.Held
	mock.lock.RUnlock()
	return calls
}
