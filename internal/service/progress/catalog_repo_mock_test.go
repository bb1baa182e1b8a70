package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lingora/lingora-backend/internal/domain"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetCourseFunc            func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetChallengeFunc         func(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)
	GetLessonFunc            func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ChallengeIDsByLessonFunc func(ctx context.Context, lessonID uuid.UUID) ([]uuid.UUID, error)
	LastChallengeIDFunc      func(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error)

	calls struct {
		GetCourse []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetChallenge []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetLesson []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ChallengeIDsByLesson []struct {
			Ctx      context.Context
			LessonID uuid.UUID
		}
		LastChallengeID []struct {
			Ctx      context.Context
			LessonID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *catalogRepoMock) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if mock.GetCourseFunc == nil {
		panic("catalogRepoMock.GetCourseFunc: method is nil but catalogRepo.GetCourse was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lock.Lock()
	mock.calls.GetCourse = append(mock.calls.GetCourse, callInfo)
	mock.lock.Unlock()
	return mock.GetCourseFunc(ctx, id)
}

func (mock *catalogRepoMock) GetCourseCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GetCourse
	mock.lock.RUnlock()
	return calls
}

func (mock *catalogRepoMock) GetChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	if mock.GetChallengeFunc == nil {
		panic("catalogRepoMock.GetChallengeFunc: method is nil but catalogRepo.GetChallenge was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lock.Lock()
	mock.calls.GetChallenge = append(mock.calls.GetChallenge, callInfo)
	mock.lock.Unlock()
	return mock.GetChallengeFunc(ctx, id)
}

func (mock *catalogRepoMock) GetChallengeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GetChallenge
	mock.lock.RUnlock()
	return calls
}

func (mock *catalogRepoMock) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if mock.GetLessonFunc == nil {
		panic("catalogRepoMock.GetLessonFunc: method is nil but catalogRepo.GetLesson was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lock.Lock()
	mock.calls.GetLesson = append(mock.calls.GetLesson, callInfo)
	mock.lock.Unlock()
	return mock.GetLessonFunc(ctx, id)
}

func (mock *catalogRepoMock) GetLessonCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.GetLesson
	mock.lock.RUnlock()
	return calls
}

func (mock *catalogRepoMock) ChallengeIDsByLesson(ctx context.Context, lessonID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ChallengeIDsByLessonFunc == nil {
		panic("catalogRepoMock.ChallengeIDsByLessonFunc: method is nil but catalogRepo.ChallengeIDsByLesson was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		LessonID uuid.UUID
	}{Ctx: ctx, LessonID: lessonID}
	mock.lock.Lock()
	mock.calls.ChallengeIDsByLesson = append(mock.calls.ChallengeIDsByLesson, callInfo)
	mock.lock.Unlock()
	return mock.ChallengeIDsByLessonFunc(ctx, lessonID)
}

func (mock *catalogRepoMock) ChallengeIDsByLessonCalls() []struct {
	Ctx      context.Context
	LessonID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.ChallengeIDsByLesson
	mock.lock.RUnlock()
	return calls
}

func (mock *catalogRepoMock) LastChallengeID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error) {
	if mock.LastChallengeIDFunc == nil {
		panic("catalogRepoMock.LastChallengeIDFunc: method is nil but catalogRepo.LastChallengeID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		LessonID uuid.UUID
	}{Ctx: ctx, LessonID: lessonID}
	mock.lock.Lock()
	mock.calls.LastChallengeID = append(mock.calls.LastChallengeID, callInfo)
	mock.lock.Unlock()
	return mock.LastChallengeIDFunc(ctx, lessonID)
}

func (mock *catalogRepoMock) LastChallengeIDCalls() []struct {
	Ctx      context.Context
	LessonID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.LastChallengeID
	mock.lock.RUnlock()
	return calls
}
