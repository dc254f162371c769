package repository

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// ProgressRepository persists lesson completions, game results, and the
// gamification aggregates derived from them.
type ProgressRepository interface {
	RecordCompletion(ctx context.Context, progress *entity.LessonProgress) (*entity.LessonProgress, error)
	CountCompletions(ctx context.Context, userID int64) (int64, error)
	ListCompletions(ctx context.Context, userID int64) ([]entity.LessonProgress, error)

	RecordGameResult(ctx context.Context, result *entity.GameResult) (*entity.GameResult, error)
	CountGameResults(ctx context.Context, userID int64) (int64, error)

	ListBadges(ctx context.Context) ([]entity.Badge, error)
	ListEarnedBadgeIDs(ctx context.Context, userID int64) ([]int64, error)
	AwardBadge(ctx context.Context, award *entity.UserBadge) (*entity.UserBadge, error)

	Leaderboard(ctx context.Context, limit int32) ([]entity.LeaderboardRow, error)
}
