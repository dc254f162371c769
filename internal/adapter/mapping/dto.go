package mapping

import (
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/usecase"
)

// UserDTO is the public representation of an account. The password hash
// never leaves the server.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"`
	XP          int64  `json:"xp"`
	Streak      int32  `json:"streak"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func FromUser(user *entity.User) UserDTO {
	dto := UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Level:       string(user.Level),
		XP:          user.XP,
		Streak:      user.Streak,
	}
	if !user.CreatedAt.IsZero() {
		dto.CreatedAt = user.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

// LessonDTO is a curriculum lesson row. Content is included only on detail
// responses; list responses leave it nil.
type LessonDTO struct {
	ID      int64                 `json:"id"`
	Level   string                `json:"level"`
	Module  string                `json:"module"`
	Order   int32                 `json:"order"`
	Title   string                `json:"title"`
	Content *entity.LessonContent `json:"content,omitempty"`
}

func FromLesson(lesson *entity.Lesson, withContent bool) LessonDTO {
	dto := LessonDTO{
		ID:     lesson.ID,
		Level:  string(lesson.Level),
		Module: lesson.Module,
		Order:  lesson.Order,
		Title:  lesson.Title,
	}
	if withContent {
		content := lesson.Content
		dto.Content = &content
	}
	return dto
}

// WeaknessDTO is one weakness ledger row.
type WeaknessDTO struct {
	SkillArea  string `json:"skill_area"`
	ErrorCount int32  `json:"error_count"`
	LastTested string `json:"last_tested"`
}

func FromWeakness(record entity.WeaknessRecord) WeaknessDTO {
	return WeaknessDTO{
		SkillArea:  string(record.SkillArea),
		ErrorCount: record.ErrorCount,
		LastTested: record.LastTested.UTC().Format(time.RFC3339),
	}
}

// BadgeDTO is a badge, optionally with the caller's earned state.
type BadgeDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned,omitempty"`
}

func FromBadge(badge entity.Badge) BadgeDTO {
	return BadgeDTO{ID: badge.ID, Name: badge.Name, Description: badge.Description, Icon: badge.Icon}
}

// RewardDTO reports what a submitted activity earned.
type RewardDTO struct {
	XPEarned     int32      `json:"xp_earned"`
	TotalXP      int64      `json:"total_xp"`
	Streak       int32      `json:"streak"`
	BadgesEarned []BadgeDTO `json:"badges_earned"`
}

func FromReward(reward *usecase.Reward) RewardDTO {
	dto := RewardDTO{
		XPEarned:     reward.XPEarned,
		TotalXP:      reward.TotalXP,
		Streak:       reward.Streak,
		BadgesEarned: []BadgeDTO{},
	}
	for _, badge := range reward.BadgesEarned {
		dto.BadgesEarned = append(dto.BadgesEarned, FromBadge(badge))
	}
	return dto
}

// SummaryDTO aggregates a user's learning progress.
type SummaryDTO struct {
	TotalLessonsCompleted int64      `json:"total_lessons_completed"`
	TotalGamesPlayed      int64      `json:"total_games_played"`
	TotalXP               int64      `json:"total_xp"`
	CurrentLevel          string     `json:"current_level"`
	CurrentStreak         int32      `json:"current_streak"`
	AverageScore          float64    `json:"average_score"`
	Badges                []BadgeDTO `json:"badges"`
}

func FromSummary(summary *usecase.Summary) SummaryDTO {
	dto := SummaryDTO{
		TotalLessonsCompleted: summary.TotalLessonsCompleted,
		TotalGamesPlayed:      summary.TotalGamesPlayed,
		TotalXP:               summary.TotalXP,
		CurrentLevel:          string(summary.CurrentLevel),
		CurrentStreak:         summary.CurrentStreak,
		AverageScore:          summary.AverageScore,
		Badges:                []BadgeDTO{},
	}
	for _, status := range summary.Badges {
		badge := FromBadge(status.Badge)
		badge.Earned = status.Earned
		dto.Badges = append(dto.Badges, badge)
	}
	return dto
}

// LeaderboardRowDTO is one ranked leaderboard entry.
type LeaderboardRowDTO struct {
	Rank        int32  `json:"rank"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"`
	XP          int64  `json:"xp"`
}

func FromLeaderboardRow(row entity.LeaderboardRow) LeaderboardRowDTO {
	return LeaderboardRowDTO{
		Rank:        row.Rank,
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		Level:       string(row.Level),
		XP:          row.XP,
	}
}
