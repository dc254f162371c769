package usecase

import (
	"context"
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
	"github.com/atlaslingo/darlingo/internal/usecase/adaptive"
)

// XP constants. Streak bonus stops growing after a month.
const (
	lessonCompleteXP   = 50
	gameCompleteXP     = 30
	perfectScoreBonus  = 20
	streakBonusPerDay  = 10
	streakBonusCapDays = 30

	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// AnswerLedger is the slice of the adaptive service the gameplay
// submission path needs.
type AnswerLedger interface {
	RecordAnswer(ctx context.Context, userID int64, skill entity.SkillArea, correct bool) error
}

// GameAnswer is one graded answer inside a submitted game.
type GameAnswer struct {
	Correct bool
}

// Reward summarizes what a completed activity earned.
type Reward struct {
	XPEarned     int32
	TotalXP      int64
	Streak       int32
	BadgesEarned []entity.Badge
}

// BadgeStatus is a badge with the user's earned state.
type BadgeStatus struct {
	entity.Badge
	Earned bool
}

// Summary aggregates a user's learning progress.
type Summary struct {
	TotalLessonsCompleted int64
	TotalGamesPlayed      int64
	TotalXP               int64
	CurrentLevel          entity.Level
	CurrentStreak         int32
	AverageScore          float64
	Badges                []BadgeStatus
}

// ProgressUsecase defines gamification logic: XP, streaks, and badges.
type ProgressUsecase interface {
	SubmitGame(ctx context.Context, userID int64, gameType entity.GameType, score float64, answers []GameAnswer) (*Reward, error)
	CompleteLesson(ctx context.Context, userID, lessonID int64, score float64) (*Reward, error)
	GetSummary(ctx context.Context, userID int64) (*Summary, error)
	Leaderboard(ctx context.Context, limit int32) ([]entity.LeaderboardRow, error)
}

type progressUsecase struct {
	users    repository.UserRepository
	lessons  repository.LessonRepository
	progress repository.ProgressRepository
	ledger   AnswerLedger

	clock func() time.Time
}

func NewProgressUsecase(
	users repository.UserRepository,
	lessons repository.LessonRepository,
	progress repository.ProgressRepository,
	ledger AnswerLedger,
) ProgressUsecase {
	return &progressUsecase{
		users:    users,
		lessons:  lessons,
		progress: progress,
		ledger:   ledger,
		clock:    time.Now,
	}
}

func (u *progressUsecase) SubmitGame(ctx context.Context, userID int64, gameType entity.GameType, score float64, answers []GameAnswer) (*Reward, error) {
	if !adaptive.KnownGameType(gameType) {
		return nil, entity.ErrInvalidGameType
	}
	if score < 0 || score > 1 {
		return nil, entity.ErrInvalidScore
	}

	skill := adaptive.GameSkillArea(gameType)
	for _, answer := range answers {
		if err := u.ledger.RecordAnswer(ctx, userID, skill, answer.Correct); err != nil {
			return nil, err
		}
	}

	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := u.updateStreak(ctx, user)
	if err != nil {
		return nil, err
	}
	xp := calculateXP(gameCompleteXP, score, streak)

	if _, err := u.progress.RecordGameResult(ctx, &entity.GameResult{
		UserID:   userID,
		GameType: gameType,
		Score:    score,
		XPEarned: xp,
		PlayedAt: u.clock(),
	}); err != nil {
		return nil, err
	}

	user.XP += int64(xp)
	if _, err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	earned, err := u.checkBadges(ctx, user, score)
	if err != nil {
		return nil, err
	}
	return &Reward{XPEarned: xp, TotalXP: user.XP, Streak: streak, BadgesEarned: earned}, nil
}

func (u *progressUsecase) CompleteLesson(ctx context.Context, userID, lessonID int64, score float64) (*Reward, error) {
	if score < 0 || score > 1 {
		return nil, entity.ErrInvalidScore
	}
	if _, err := u.lessons.GetByID(ctx, lessonID); err != nil {
		return nil, err
	}
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := u.updateStreak(ctx, user)
	if err != nil {
		return nil, err
	}
	xp := calculateXP(lessonCompleteXP, score, streak)

	if _, err := u.progress.RecordCompletion(ctx, &entity.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Score:       score,
		CompletedAt: u.clock(),
	}); err != nil {
		return nil, err
	}

	user.XP += int64(xp)
	if _, err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	earned, err := u.checkBadges(ctx, user, score)
	if err != nil {
		return nil, err
	}
	return &Reward{XPEarned: xp, TotalXP: user.XP, Streak: streak, BadgesEarned: earned}, nil
}

func (u *progressUsecase) GetSummary(ctx context.Context, userID int64) (*Summary, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	completions, err := u.progress.ListCompletions(ctx, userID)
	if err != nil {
		return nil, err
	}
	games, err := u.progress.CountGameResults(ctx, userID)
	if err != nil {
		return nil, err
	}

	var avg float64
	if len(completions) > 0 {
		for _, c := range completions {
			avg += c.Score
		}
		avg /= float64(len(completions))
	}

	badges, err := u.progress.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	earnedIDs, err := u.progress.ListEarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[int64]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}
	statuses := make([]BadgeStatus, 0, len(badges))
	for _, badge := range badges {
		statuses = append(statuses, BadgeStatus{Badge: badge, Earned: earned[badge.ID]})
	}

	return &Summary{
		TotalLessonsCompleted: int64(len(completions)),
		TotalGamesPlayed:      games,
		TotalXP:               user.XP,
		CurrentLevel:          user.Level,
		CurrentStreak:         user.Streak,
		AverageScore:          avg,
		Badges:                statuses,
	}, nil
}

func (u *progressUsecase) Leaderboard(ctx context.Context, limit int32) ([]entity.LeaderboardRow, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}
	return u.progress.Leaderboard(ctx, limit)
}

// calculateXP scales base XP by accuracy, then applies the perfect-score
// and streak bonuses. Every activity is worth at least 1 XP.
func calculateXP(base int32, accuracy float64, streakDays int32) int32 {
	xp := int32(float64(base) * accuracy)
	if accuracy >= 1.0 {
		xp += perfectScoreBonus
	}
	if streakDays > 0 {
		xp += streakBonusPerDay * min(streakDays, streakBonusCapDays)
	}
	return max(xp, 1)
}

// updateStreak applies the daily streak rules in place on user and persists
// the change: activity on the same day keeps the streak, activity the day
// after the last one extends it, anything else resets it to 1.
func (u *progressUsecase) updateStreak(ctx context.Context, user *entity.User) (int32, error) {
	now := u.clock()
	today := now.Truncate(24 * time.Hour)

	if !user.LastActive.IsZero() {
		lastDay := user.LastActive.Truncate(24 * time.Hour)
		switch {
		case lastDay.Equal(today):
			return user.Streak, nil
		case lastDay.Equal(today.AddDate(0, 0, -1)):
			user.Streak++
		default:
			user.Streak = 1
		}
	} else {
		user.Streak = 1
	}
	user.LastActive = now

	if _, err := u.users.Update(ctx, user); err != nil {
		return 0, err
	}
	return user.Streak, nil
}

// badgeChecks maps a badge name to its criterion. Badge rows themselves
// are seeded by db-init; unknown rows simply never match.
var badgeChecks = map[string]func(stats badgeStats) bool{
	"First Steps":   func(s badgeStats) bool { return s.LessonsCompleted >= 1 },
	"Scholar":       func(s badgeStats) bool { return s.LessonsCompleted >= 10 },
	"Game On":       func(s badgeStats) bool { return s.GamesPlayed >= 1 },
	"Streak Master": func(s badgeStats) bool { return s.Streak >= 7 },
	"XP Hunter":     func(s badgeStats) bool { return s.TotalXP >= 500 },
	"Perfectionist": func(s badgeStats) bool { return s.LatestScore >= 1.0 },
}

type badgeStats struct {
	LessonsCompleted int64
	GamesPlayed      int64
	Streak           int32
	TotalXP          int64
	LatestScore      float64
}

func (u *progressUsecase) checkBadges(ctx context.Context, user *entity.User, latestScore float64) ([]entity.Badge, error) {
	lessonsCompleted, err := u.progress.CountCompletions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	gamesPlayed, err := u.progress.CountGameResults(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	stats := badgeStats{
		LessonsCompleted: lessonsCompleted,
		GamesPlayed:      gamesPlayed,
		Streak:           user.Streak,
		TotalXP:          user.XP,
		LatestScore:      latestScore,
	}

	badges, err := u.progress.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	earnedIDs, err := u.progress.ListEarnedBadgeIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	earned := make(map[int64]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var newlyEarned []entity.Badge
	for _, badge := range badges {
		check, ok := badgeChecks[badge.Name]
		if !ok || earned[badge.ID] || !check(stats) {
			continue
		}
		if _, err := u.progress.AwardBadge(ctx, &entity.UserBadge{
			UserID:   user.ID,
			BadgeID:  badge.ID,
			EarnedAt: u.clock(),
		}); err != nil {
			return nil, err
		}
		newlyEarned = append(newlyEarned, badge)
	}
	return newlyEarned, nil
}
