package progress

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	ProgressChangedFunc func(ctx context.Context, courseID, lessonID uuid.UUID)

	calls struct {
		ProgressChanged []struct {
			Ctx      context.Context
			CourseID uuid.UUID
			LessonID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *notifierMock) ProgressChanged(ctx context.Context, courseID, lessonID uuid.UUID) {
	if mock.ProgressChangedFunc == nil {
		panic("notifierMock.ProgressChangedFunc: method is nil but notifier.ProgressChanged was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		CourseID uuid.UUID
		LessonID uuid.UUID
	}{Ctx: ctx, CourseID: courseID, LessonID: lessonID}
	mock.lock.Lock()
	mock.calls.ProgressChanged = append(mock.calls.ProgressChanged, callInfo)
	mock.lock.Unlock()
	mock.ProgressChangedFunc(ctx, courseID, lessonID)
}

func (mock *notifierMock) ProgressChangedCalls() []struct {
	Ctx      context.Context
	CourseID uuid.UUID
	LessonID uuid.UUID
} {
	mock.lock.RLock()
	calls := mock.calls.ProgressChanged
	mock.lock.RUnlock()
	return calls
}
