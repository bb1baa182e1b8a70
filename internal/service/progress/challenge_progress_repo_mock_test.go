package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

var _ challengeProgressRepo = &challengeProgressRepoMock{}

type challengeProgressRepoMock struct {
	GetFunc                   func(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)
	InsertFunc                func(ctx context.Context, userID, challengeID uuid.UUID) (bool, error)
	MarkCompletedFunc         func(ctx context.Context, userID, challengeID uuid.UUID) error
	CompletedChallengeIDsFunc func(ctx context.Context, userID, lessonID uuid.UUID) ([]uuid.UUID, error)
	CountCompletedFunc        func(ctx context.Context, userID uuid.UUID) (int, error)

	calls struct {
		Get []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			ChallengeID uuid.UUID
		}
		Insert []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			ChallengeID uuid.UUID
		}
		MarkCompleted []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			ChallengeID uuid.UUID
		}
		CompletedChallengeIDs []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			LessonID uuid.UUID
		}
		CountCompleted []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *challengeProgressRepoMock) Get(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	if mock.GetFunc == nil {
		panic("challengeProgressRepoMock.GetFunc: method is nil but challengeProgressRepo.Get was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		ChallengeID uuid.UUID
	}{Ctx: ctx, UserID: userID, ChallengeID: challengeID}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lock.Unlock()
	return mock.GetFunc(ctx, userID, challengeID)
}

func (mock *challengeProgressRepoMock) GetCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	ChallengeID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.Get
	mock.lock.RUnlock()
	return calls
}

func (mock *challengeProgressRepoMock) Insert(ctx context.Context, userID, challengeID uuid.UUID) (bool, error) {
	if mock.InsertFunc == nil {
		panic("challengeProgressRepoMock.InsertFunc: method is nil but challengeProgressRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		ChallengeID uuid.UUID
	}{Ctx: ctx, UserID: userID, ChallengeID: challengeID}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, userID, challengeID)
}

func (mock *challengeProgressRepoMock) InsertCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	ChallengeID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.Insert
	mock.lock.RUnlock()
	return calls
}

func (mock *challengeProgressRepoMock) MarkCompleted(ctx context.Context, userID, challengeID uuid.UUID) error {
	if mock.MarkCompletedFunc == nil {
		panic("challengeProgressRepoMock.MarkCompletedFunc: method is nil but challengeProgressRepo.MarkCompleted was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		ChallengeID uuid.UUID
	}{Ctx: ctx, UserID: userID, ChallengeID: challengeID}
	mock.lock.Lock()
	mock.calls.MarkCompleted = append(mock.calls.MarkCompleted, callInfo)
	mock.lock.Unlock()
	return mock.MarkCompletedFunc(ctx, userID, challengeID)
}

func (mock *challengeProgressRepoMock) MarkCompletedCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	ChallengeID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.MarkCompleted
	mock.lock.RUnlock()
	return calls
}

func (mock *challengeProgressRepoMock) CompletedChallengeIDs(ctx context.Context, userID, lessonID uuid.UUID) ([]uuid.UUID, error) {
	if mock.CompletedChallengeIDsFunc == nil {
		panic("challengeProgressRepoMock.CompletedChallengeIDsFunc: method is nil but challengeProgressRepo.CompletedChallengeIDs was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		LessonID uuid.UUID
	}{Ctx: ctx, UserID: userID, LessonID: lessonID}
	mock.lock.Lock()
	mock.calls.CompletedChallengeIDs = append(mock.calls.CompletedChallengeIDs, callInfo)
	mock.lock.Unlock()
	return mock.CompletedChallengeIDsFunc(ctx, userID, lessonID)
}

func (mock *challengeProgressRepoMock) CompletedChallengeIDsCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	LessonID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.CompletedChallengeIDs
	mock.lock.RUnlock()
	return calls
}

func (mock *challengeProgressRepoMock) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountCompletedFunc == nil {
		panic("challengeProgressRepoMock.CountCompletedFunc: method is nil but challengeProgressRepo.CountCompleted was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lock.Lock()
	mock.calls.CountCompleted = append(mock.calls.CountCompleted, callInfo)
	mock.lock.Unlock()
	return mock.CountCompletedFunc(ctx, userID)
}

func (mock *challengeProgressRepoMock) CountCompletedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.CountCompleted
	mock.lock.RUnlock()
	return calls
}
