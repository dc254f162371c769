package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type progressRepository struct{ db *sqlx.DB }

// NewProgressRepository creates a progress repository over an open database.
func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) RecordCompletion(ctx context.Context, progress *entity.LessonProgress) (*entity.LessonProgress, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO user_progress (user_id, lesson_id, score, completed_at) VALUES (?, ?, ?, ?)`,
		progress.UserID, progress.LessonID, progress.Score, progress.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	created := *progress
	created.ID = id
	return &created, nil
}

func (r *progressRepository) CountCompletions(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		r.db.Rebind(`SELECT COUNT(*) FROM user_progress WHERE user_id = ?`), userID)
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}

func (r *progressRepository) ListCompletions(ctx context.Context, userID int64) ([]entity.LessonProgress, error) {
	type row struct {
		ID          int64   `db:"id"`
		UserID      int64   `db:"user_id"`
		LessonID    int64   `db:"lesson_id"`
		Score       float64 `db:"score"`
		CompletedAt sql.NullTime `db:"completed_at"`
	}
	var rows []row
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT id, user_id, lesson_id, score, completed_at
		 FROM user_progress WHERE user_id = ? ORDER BY completed_at DESC, id DESC`),
		userID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	out := make([]entity.LessonProgress, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.LessonProgress{
			ID: r.ID, UserID: r.UserID, LessonID: r.LessonID,
			Score: r.Score, CompletedAt: r.CompletedAt.Time,
		})
	}
	return out, nil
}

func (r *progressRepository) RecordGameResult(ctx context.Context, result *entity.GameResult) (*entity.GameResult, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO game_results (user_id, game_type, score, xp_earned, played_at) VALUES (?, ?, ?, ?, ?)`,
		result.UserID, string(result.GameType), result.Score, result.XPEarned, result.PlayedAt)
	if err != nil {
		return nil, fmt.Errorf("record game result: %w", err)
	}
	created := *result
	created.ID = id
	return &created, nil
}

func (r *progressRepository) CountGameResults(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		r.db.Rebind(`SELECT COUNT(*) FROM game_results WHERE user_id = ?`), userID)
	if err != nil {
		return 0, fmt.Errorf("count game results: %w", err)
	}
	return n, nil
}

func (r *progressRepository) ListBadges(ctx context.Context) ([]entity.Badge, error) {
	type row struct {
		ID          int64  `db:"id"`
		Name        string `db:"name"`
		Description string `db:"description"`
		Icon        string `db:"icon"`
	}
	var rows []row
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, description, icon FROM badges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	out := make([]entity.Badge, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.Badge{ID: r.ID, Name: r.Name, Description: r.Description, Icon: r.Icon})
	}
	return out, nil
}

func (r *progressRepository) ListEarnedBadgeIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, r.db.Rebind(
		`SELECT badge_id FROM user_badges WHERE user_id = ? ORDER BY badge_id`), userID)
	if err != nil {
		return nil, fmt.Errorf("list earned badges: %w", err)
	}
	return ids, nil
}

func (r *progressRepository) AwardBadge(ctx context.Context, award *entity.UserBadge) (*entity.UserBadge, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO user_badges (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		award.UserID, award.BadgeID, award.EarnedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Award races are harmless; the badge is already earned.
			return award, nil
		}
		return nil, fmt.Errorf("award badge: %w", err)
	}
	created := *award
	created.ID = id
	return &created, nil
}

func (r *progressRepository) Leaderboard(ctx context.Context, limit int32) ([]entity.LeaderboardRow, error) {
	type row struct {
		UserID      int64  `db:"id"`
		DisplayName string `db:"display_name"`
		Level       string `db:"level"`
		XP          int64  `db:"xp"`
	}
	var rows []row
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT id, display_name, level, xp FROM users ORDER BY xp DESC, id ASC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	out := make([]entity.LeaderboardRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, entity.LeaderboardRow{
			Rank:        int32(i + 1),
			UserID:      r.UserID,
			DisplayName: r.DisplayName,
			Level:       entity.Level(r.Level),
			XP:          r.XP,
		})
	}
	return out, nil
}
