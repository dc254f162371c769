package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func defaultBadges() []entity.Badge {
	return []entity.Badge{
		{Name: "First Steps", Description: "Complete your first lesson", Icon: "footprints"},
		{Name: "Scholar", Description: "Complete 10 lessons", Icon: "book"},
		{Name: "Game On", Description: "Play your first game", Icon: "gamepad"},
		{Name: "Streak Master", Description: "Reach a 7-day streak", Icon: "fire"},
		{Name: "XP Hunter", Description: "Earn 500 XP total", Icon: "trophy"},
		{Name: "Perfectionist", Description: "Get a perfect score on any activity", Icon: "star"},
	}
}

type progressFixture struct {
	users    *fakeUserRepo
	lessons  *fakeLessonRepo
	progress *fakeProgressRepo
	ledger   *fakeLedger
	uc       *progressUsecase
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	fix := &progressFixture{
		users:    newFakeUserRepo(),
		lessons:  newFakeLessonRepo(),
		progress: newFakeProgressRepo(),
		ledger:   &fakeLedger{},
	}
	fix.progress.seedBadges(defaultBadges()...)
	uc := NewProgressUsecase(fix.users, fix.lessons, fix.progress, fix.ledger)
	fix.uc = uc.(*progressUsecase)
	fix.uc.clock = fixedNow
	return fix
}

func (fix *progressFixture) addUser(t *testing.T, user entity.User) *entity.User {
	t.Helper()
	created, err := fix.users.Create(context.Background(), &user)
	if err != nil {
		t.Fatal(err)
	}
	return created
}

func TestCalculateXP(t *testing.T) {
	cases := []struct {
		name     string
		base     int32
		accuracy float64
		streak   int32
		want     int32
	}{
		{"game partial", gameCompleteXP, 0.5, 0, 15},
		{"perfect adds bonus", gameCompleteXP, 1.0, 0, 50},
		{"streak bonus", gameCompleteXP, 0.5, 3, 45},
		{"streak capped", lessonCompleteXP, 1.0, 45, 50 + 20 + 10*30},
		{"never below one", gameCompleteXP, 0.0, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := calculateXP(tc.base, tc.accuracy, tc.streak); got != tc.want {
				t.Fatalf("calculateXP(%d, %v, %d) = %d, want %d", tc.base, tc.accuracy, tc.streak, got, tc.want)
			}
		})
	}
}

func TestUpdateStreakTransitions(t *testing.T) {
	cases := []struct {
		name       string
		lastActive time.Time
		streak     int32
		want       int32
	}{
		{"first activity", time.Time{}, 0, 1},
		{"same day keeps streak", fixedNow().Add(-2 * time.Hour), 4, 4},
		{"yesterday extends", fixedNow().AddDate(0, 0, -1), 4, 5},
		{"gap resets", fixedNow().AddDate(0, 0, -3), 9, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fix := newProgressFixture(t)
			user := fix.addUser(t, entity.User{
				Email: "amina@example.com", DisplayName: "Amina",
				Level: entity.LevelA2, Streak: tc.streak, LastActive: tc.lastActive,
			})
			got, err := fix.uc.updateStreak(context.Background(), user)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("streak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSubmitGameRecordsAnswersAndXP(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	user := fix.addUser(t, entity.User{Email: "amina@example.com", DisplayName: "Amina", Level: entity.LevelA2})

	reward, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameFillBlank, 0.5, []GameAnswer{
		{Correct: true}, {Correct: false}, {Correct: false},
	})
	if err != nil {
		t.Fatalf("SubmitGame: %v", err)
	}

	if len(fix.ledger.entries) != 3 {
		t.Fatalf("ledger entries = %d, want 3", len(fix.ledger.entries))
	}
	for _, e := range fix.ledger.entries {
		if e.Skill != entity.SkillGrammar {
			t.Errorf("ledger skill = %q, want %q", e.Skill, entity.SkillGrammar)
		}
	}

	// First activity sets streak to 1: 30*0.5 + 10 = 25.
	if reward.XPEarned != 25 {
		t.Errorf("xp earned = %d, want 25", reward.XPEarned)
	}
	if reward.Streak != 1 {
		t.Errorf("streak = %d, want 1", reward.Streak)
	}

	stored, err := fix.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.XP != int64(reward.XPEarned) {
		t.Errorf("stored xp = %d, want %d", stored.XP, reward.XPEarned)
	}
	if len(fix.progress.results) != 1 {
		t.Fatalf("game results = %d, want 1", len(fix.progress.results))
	}
	if got := fix.progress.results[0]; got.GameType != entity.GameFillBlank || !got.PlayedAt.Equal(fixedNow()) {
		t.Errorf("stored result = %+v", got)
	}
}

func TestSubmitGameRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	user := fix.addUser(t, entity.User{Email: "amina@example.com", DisplayName: "Amina"})

	if _, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameType("tetris"), 0.5, nil); err != entity.ErrInvalidGameType {
		t.Errorf("unknown game type err = %v, want %v", err, entity.ErrInvalidGameType)
	}
	if _, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameWordMatch, 1.5, nil); err != entity.ErrInvalidScore {
		t.Errorf("out-of-range score err = %v, want %v", err, entity.ErrInvalidScore)
	}
}

func TestSubmitGameAwardsBadges(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	user := fix.addUser(t, entity.User{Email: "amina@example.com", DisplayName: "Amina"})

	reward, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameWordMatch, 1.0, []GameAnswer{{Correct: true}})
	if err != nil {
		t.Fatalf("SubmitGame: %v", err)
	}

	names := make(map[string]bool)
	for _, badge := range reward.BadgesEarned {
		names[badge.Name] = true
	}
	for _, want := range []string{"Game On", "Perfectionist"} {
		if !names[want] {
			t.Errorf("badge %q not awarded; got %v", want, names)
		}
	}
	if names["First Steps"] {
		t.Error("lesson badge awarded for a game")
	}

	// A second perfect game must not award the same badges again.
	again, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameListening, 1.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, badge := range again.BadgesEarned {
		if badge.Name == "Game On" || badge.Name == "Perfectionist" {
			t.Errorf("badge %q awarded twice", badge.Name)
		}
	}
}

func TestCompleteLesson(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	user := fix.addUser(t, entity.User{Email: "amina@example.com", DisplayName: "Amina"})
	lesson, err := fix.lessons.Create(ctx, &entity.Lesson{Level: entity.LevelA1, Module: "greetings", Order: 1, Title: "Hello"})
	if err != nil {
		t.Fatal(err)
	}

	reward, err := fix.uc.CompleteLesson(ctx, user.ID, lesson.ID, 1.0)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	// 50*1.0 + perfect 20 + streak day 10.
	if reward.XPEarned != 80 {
		t.Errorf("xp earned = %d, want 80", reward.XPEarned)
	}
	found := false
	for _, badge := range reward.BadgesEarned {
		if badge.Name == "First Steps" {
			found = true
		}
	}
	if !found {
		t.Error("first lesson did not award First Steps")
	}
	if len(fix.progress.completions) != 1 {
		t.Fatalf("completions = %d, want 1", len(fix.progress.completions))
	}

	if _, err := fix.uc.CompleteLesson(ctx, user.ID, 404, 1.0); err != entity.ErrLessonNotFound {
		t.Errorf("missing lesson err = %v, want %v", err, entity.ErrLessonNotFound)
	}
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	user := fix.addUser(t, entity.User{Email: "amina@example.com", DisplayName: "Amina", Level: entity.LevelB1})
	lesson, err := fix.lessons.Create(ctx, &entity.Lesson{Level: entity.LevelB1, Module: "food", Order: 1, Title: "Souk"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fix.uc.CompleteLesson(ctx, user.ID, lesson.ID, 0.8); err != nil {
		t.Fatal(err)
	}
	if _, err := fix.uc.SubmitGame(ctx, user.ID, entity.GameWordMatch, 0.6, nil); err != nil {
		t.Fatal(err)
	}

	summary, err := fix.uc.GetSummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalLessonsCompleted != 1 || summary.TotalGamesPlayed != 1 {
		t.Errorf("totals = %d lessons, %d games; want 1 and 1",
			summary.TotalLessonsCompleted, summary.TotalGamesPlayed)
	}
	if summary.AverageScore != 0.8 {
		t.Errorf("average score = %v, want 0.8", summary.AverageScore)
	}
	if summary.CurrentLevel != entity.LevelB1 {
		t.Errorf("level = %q, want b1", summary.CurrentLevel)
	}
	if len(summary.Badges) != len(defaultBadges()) {
		t.Fatalf("badges = %d, want %d", len(summary.Badges), len(defaultBadges()))
	}
	earned := 0
	for _, badge := range summary.Badges {
		if badge.Earned {
			earned++
		}
	}
	// First Steps and Game On, but no perfect score or big streak yet.
	if earned != 2 {
		t.Errorf("earned badges = %d, want 2", earned)
	}
}

func TestLeaderboardLimit(t *testing.T) {
	ctx := context.Background()
	fix := newProgressFixture(t)
	for i := 0; i < 15; i++ {
		fix.progress.rows = append(fix.progress.rows, entity.LeaderboardRow{Rank: int32(i + 1), UserID: int64(i + 1)})
	}

	rows, err := fix.uc.Leaderboard(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != defaultLeaderboardSize {
		t.Errorf("rows = %d, want default %d", len(rows), defaultLeaderboardSize)
	}
}
