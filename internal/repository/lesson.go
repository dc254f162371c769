package repository

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// ListLessonQuery holds parameters for listing curriculum lessons.
type ListLessonQuery struct {
	Pagination
	FilterOrder
}

// LessonRepository abstracts curriculum storage so the adaptive core stays
// storage agnostic. Completed* queries join completion records to lessons.
type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error)
	GetByID(ctx context.Context, id int64) (*entity.Lesson, error)
	List(ctx context.Context, query *ListLessonQuery) ([]entity.Lesson, int64, error)

	// CompletedModules returns the distinct modules where the user finished
	// at least one ordinary lesson (order < games bundle) at the level.
	CompletedModules(ctx context.Context, userID int64, level entity.Level) ([]string, error)

	// GameBundles loads games-bundle content rows for the level. A non-empty
	// modules slice restricts the query to those modules.
	GameBundles(ctx context.Context, level entity.Level, modules []string) ([]entity.LessonContent, error)

	// CompletedLessonContent returns the content of every ordinary lesson
	// the user completed at the level, for vocabulary extraction.
	CompletedLessonContent(ctx context.Context, userID int64, level entity.Level) ([]entity.LessonContent, error)
}
