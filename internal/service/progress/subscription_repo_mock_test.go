package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

var _ subscriptionRepo = &subscriptionRepoMock{}

type subscriptionRepoMock struct {
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)

	calls struct {
		GetByUserID []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *subscriptionRepoMock) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error) {
	if mock.GetByUserIDFunc == nil {
		panic("subscriptionRepoMock.GetByUserIDFunc: method is nil but subscriptionRepo.GetByUserID was just called")
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

func (mock *subscriptionRepoMock) GetByUserIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GetByUserID
	mock.lock.RUnlock()
	return calls
}
