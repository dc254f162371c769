package usecase

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

// LessonUsecase exposes curriculum browsing.
type LessonUsecase interface {
	List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error)
	Get(ctx context.Context, id int64) (*entity.Lesson, error)
	Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
}

type lessonUsecase struct {
	lessons repository.LessonRepository
}

func NewLessonUsecase(lessons repository.LessonRepository) LessonUsecase {
	return &lessonUsecase{lessons: lessons}
}

func (u *lessonUsecase) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	return u.lessons.List(ctx, query)
}

func (u *lessonUsecase) Get(ctx context.Context, id int64) (*entity.Lesson, error) {
	return u.lessons.GetByID(ctx, id)
}

func (u *lessonUsecase) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := lesson.Validate(); err != nil {
		return nil, err
	}
	return u.lessons.Create(ctx, lesson)
}
