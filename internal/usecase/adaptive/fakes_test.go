package adaptive

import (
	"context"
	"sort"
	"sync"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type fakeLessonRepo struct {
	mu        sync.Mutex
	seq       int64
	lessons   map[int64]*entity.Lesson
	completed map[int64]map[int64]bool
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{
		lessons:   make(map[int64]*entity.Lesson),
		completed: make(map[int64]map[int64]bool),
	}
}

func (f *fakeLessonRepo) add(lesson entity.Lesson) *entity.Lesson {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	lesson.ID = f.seq
	f.lessons[lesson.ID] = &lesson
	return &lesson
}

func (f *fakeLessonRepo) complete(userID, lessonID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.completed[userID] == nil {
		f.completed[userID] = make(map[int64]bool)
	}
	f.completed[userID][lessonID] = true
}

func (f *fakeLessonRepo) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.add(*lesson), nil
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var modules []string
	for id := range f.completed[userID] {
		lesson := f.lessons[id]
		if lesson == nil || lesson.Level != level || lesson.IsGamesBundle() {
			continue
		}
		if !seen[lesson.Module] {
			seen[lesson.Module] = true
			modules = append(modules, lesson.Module)
		}
	}
	sort.Strings(modules)
	return modules, nil
}

func (f *fakeLessonRepo) GameBundles(ctx context.Context, level entity.Level, modules []string) ([]entity.LessonContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	allowed := make(map[string]bool)
	for _, m := range modules {
		allowed[m] = true
	}
	var out []entity.LessonContent
	for _, lesson := range f.sorted() {
		if lesson.Level != level || !lesson.IsGamesBundle() {
			continue
		}
		if len(modules) > 0 && !allowed[lesson.Module] {
			continue
		}
		out = append(out, lesson.Content)
	}
	return out, nil
}

func (f *fakeLessonRepo) CompletedLessonContent(ctx context.Context, userID int64, level entity.Level) ([]entity.LessonContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.LessonContent
	for _, lesson := range f.sorted() {
		if lesson.Level != level || lesson.IsGamesBundle() || !f.completed[userID][lesson.ID] {
			continue
		}
		out = append(out, lesson.Content)
	}
	return out, nil
}

func (f *fakeLessonRepo) sorted() []*entity.Lesson {
	out := make([]*entity.Lesson, 0, len(f.lessons))
	for _, lesson := range f.lessons {
		out = append(out, lesson)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeWeaknessRepo struct {
	mu      sync.Mutex
	seq     int64
	records map[int64]*entity.WeaknessRecord
}

func newFakeWeaknessRepo() *fakeWeaknessRepo {
	return &fakeWeaknessRepo{records: make(map[int64]*entity.WeaknessRecord)}
}

func (f *fakeWeaknessRepo) Create(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	clone := *record
	clone.ID = f.seq
	f.records[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeWeaknessRepo) Update(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[record.ID]; !ok {
		return nil, entity.ErrWeaknessNotFound
	}
	clone := *record
	f.records[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (f *fakeWeaknessRepo) FindBySkillArea(ctx context.Context, userID int64, skill entity.SkillArea) (*entity.WeaknessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.UserID == userID && record.SkillArea == skill {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeWeaknessRepo) ListByUser(ctx context.Context, userID int64) ([]entity.WeaknessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.WeaknessRecord
	for _, record := range f.records {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ErrorCount != out[j].ErrorCount {
			return out[i].ErrorCount > out[j].ErrorCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
