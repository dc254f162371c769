package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, entity.ErrDuplicateUser
		}
	}
	f.seq++
	clone := *user
	clone.ID = f.seq
	f.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return nil, entity.ErrUserNotFound
	}
	clone := *user
	f.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeLessonRepo struct {
	mu      sync.Mutex
	seq     int64
	lessons map[int64]*entity.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{lessons: make(map[int64]*entity.Lesson)}
}

func (f *fakeLessonRepo) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	clone := *lesson
	clone.ID = f.seq
	f.lessons[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, id int64) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, entity.ErrLessonNotFound
	}
	clone := *lesson
	return &clone, nil
}

func (f *fakeLessonRepo) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Lesson
	for _, lesson := range f.lessons {
		out = append(out, *lesson)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeLessonRepo) CompletedModules(ctx context.Context, userID int64, level entity.Level) ([]string, error) {
	return nil, ctx.Err()
}

func (f *fakeLessonRepo) GameBundles(ctx context.Context, level entity.Level, modules []string) ([]entity.LessonContent, error) {
	return nil, ctx.Err()
}

func (f *fakeLessonRepo) CompletedLessonContent(ctx context.Context, userID int64, level entity.Level) ([]entity.LessonContent, error) {
	return nil, ctx.Err()
}

type fakeProgressRepo struct {
	mu          sync.Mutex
	seq         int64
	completions []entity.LessonProgress
	results     []entity.GameResult
	badges      []entity.Badge
	awards      []entity.UserBadge
	rows        []entity.LeaderboardRow
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{}
}

func (f *fakeProgressRepo) seedBadges(badges ...entity.Badge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, badge := range badges {
		f.seq++
		badge.ID = f.seq
		f.badges = append(f.badges, badge)
	}
}

func (f *fakeProgressRepo) RecordCompletion(ctx context.Context, progress *entity.LessonProgress) (*entity.LessonProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	clone := *progress
	clone.ID = f.seq
	f.completions = append(f.completions, clone)
	out := clone
	return &out, nil
}

func (f *fakeProgressRepo) CountCompletions(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.completions {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressRepo) ListCompletions(ctx context.Context, userID int64) ([]entity.LessonProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.LessonProgress
	for _, c := range f.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) RecordGameResult(ctx context.Context, result *entity.GameResult) (*entity.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	clone := *result
	clone.ID = f.seq
	f.results = append(f.results, clone)
	out := clone
	return &out, nil
}

func (f *fakeProgressRepo) CountGameResults(ctx context.Context, userID int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.results {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressRepo) ListBadges(ctx context.Context) ([]entity.Badge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Badge(nil), f.badges...), nil
}

func (f *fakeProgressRepo) ListEarnedBadgeIDs(ctx context.Context, userID int64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, award := range f.awards {
		if award.UserID == userID {
			out = append(out, award.BadgeID)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) AwardBadge(ctx context.Context, award *entity.UserBadge) (*entity.UserBadge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	clone := *award
	clone.ID = f.seq
	f.awards = append(f.awards, clone)
	out := clone
	return &out, nil
}

func (f *fakeProgressRepo) Leaderboard(ctx context.Context, limit int32) ([]entity.LeaderboardRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if int(limit) < len(f.rows) {
		return append([]entity.LeaderboardRow(nil), f.rows[:limit]...), nil
	}
	return append([]entity.LeaderboardRow(nil), f.rows...), nil
}

type fakeLedger struct {
	mu      sync.Mutex
	entries []struct {
		UserID  int64
		Skill   entity.SkillArea
		Correct bool
	}
}

func (f *fakeLedger) RecordAnswer(ctx context.Context, userID int64, skill entity.SkillArea, correct bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, struct {
		UserID  int64
		Skill   entity.SkillArea
		Correct bool
	}{userID, skill, correct})
	return nil
}

type fakeChatModel struct {
	reply      string
	err        error
	lastSystem string
	lastTurns  []ChatTurn
}

func (f *fakeChatModel) Reply(ctx context.Context, systemPrompt string, history []ChatTurn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.lastSystem = systemPrompt
	f.lastTurns = history
	return f.reply, f.err
}
