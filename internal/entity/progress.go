package entity

import "time"

// WeaknessRecord counts wrong answers per (user, skill area). At most one
// record exists per pair; the ledger upserts and never deletes.
type WeaknessRecord struct {
	ID         int64
	UserID     int64
	SkillArea  SkillArea
	ErrorCount int32
	LastTested time.Time
}

// LessonProgress marks a completed lesson with the score achieved.
type LessonProgress struct {
	ID          int64
	UserID      int64
	LessonID    int64
	Score       float64
	CompletedAt time.Time
}

// GameResult records one finished game and the XP it earned.
type GameResult struct {
	ID       int64
	UserID   int64
	GameType GameType
	Score    float64
	XPEarned int32
	PlayedAt time.Time
}

// Badge is an achievement a user can earn once.
type Badge struct {
	ID          int64
	Name        string
	Description string
	Icon        string
}

// UserBadge links an earned badge to a user.
type UserBadge struct {
	ID       int64
	UserID   int64
	BadgeID  int64
	EarnedAt time.Time
}

// LeaderboardRow is one ranked entry of the XP leaderboard.
type LeaderboardRow struct {
	Rank        int32
	UserID      int64
	DisplayName string
	Level       Level
	XP          int64
}
