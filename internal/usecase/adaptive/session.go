// Package adaptive generates personalised practice sessions. Each session
// mixes core games, games targeting the user's weakest skill areas, and
// random fillers, built from curriculum content the user has already
// studied at their level.
package adaptive

import (
	"context"
	"time"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
	"github.com/samber/lo"
)

// Service composes game sessions and maintains the weakness ledger.
type Service interface {
	// GenerateSession returns up to sessionSize games for the user at the
	// level. It reads repository state but never writes.
	GenerateSession(ctx context.Context, userID int64, level entity.Level) ([]entity.GameConfig, error)

	// RecordAnswer upserts the weakness ledger for one graded answer.
	// Wrong answers increment the error count; correct answers only touch
	// the last-tested timestamp.
	RecordAnswer(ctx context.Context, userID int64, skill entity.SkillArea, correct bool) error

	// ListWeaknesses returns the user's ledger ordered by error count
	// descending.
	ListWeaknesses(ctx context.Context, userID int64) ([]entity.WeaknessRecord, error)
}

type service struct {
	lessons    repository.LessonRepository
	weaknesses repository.WeaknessRepository

	rnd   Rand
	clock func() time.Time
}

// NewService creates the adaptive session service.
func NewService(lessons repository.LessonRepository, weaknesses repository.WeaknessRepository) Service {
	return &service{
		lessons:    lessons,
		weaknesses: weaknesses,
		rnd:        DefaultRand(),
		clock:      time.Now,
	}
}

// composePass enumerates the three stages of session composition. Each game
// type occupies at most one slot across all passes.
type composePass int

const (
	passCore composePass = iota
	passWeakness
	passFiller
)

var composePasses = []composePass{passCore, passWeakness, passFiller}

func (s *service) GenerateSession(ctx context.Context, userID int64, level entity.Level) ([]entity.GameConfig, error) {
	level = entity.NormalizeLevel(level)

	weaknesses, err := s.weaknesses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	modules, err := s.lessons.CompletedModules(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	pool, err := s.loadGameContent(ctx, level, modules)
	if err != nil {
		return nil, err
	}

	// Vocabulary the user actually studied enriches every vocabulary-driven
	// game, not just word match.
	lessonVocab, err := s.lessonVocabulary(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	pool.WordMatch = mergeVocabulary(pool.WordMatch, lessonVocab)

	conjugations, err := s.lessonConjugations(ctx, userID, level)
	if err != nil {
		return nil, err
	}

	difficulty := difficultyFor(level)
	games := make([]entity.GameConfig, 0, sessionSize)
	used := make(map[entity.GameType]bool)

	for _, pass := range composePasses {
		for _, def := range s.passCandidates(pass, weaknesses, used) {
			if len(games) >= sessionSize {
				break
			}
			if used[def.GameType] {
				continue
			}
			games = append(games, entity.GameConfig{
				GameType:    def.GameType,
				Title:       def.Title,
				Description: def.Description,
				Config:      s.buildConfig(def.GameType, level, difficulty, pool, conjugations),
			})
			// An unusable build still consumes the slot, otherwise a thin
			// content pool would make the filler pass loop forever.
			used[def.GameType] = true
		}
	}
	return games, nil
}

// passCandidates returns the ordered game definitions a pass may include.
func (s *service) passCandidates(pass composePass, weaknesses []entity.WeaknessRecord, used map[entity.GameType]bool) []gameDefinition {
	switch pass {
	case passCore:
		return lo.Filter(gameCatalog, func(def gameDefinition, _ int) bool {
			return coreGameTypes[def.GameType]
		})
	case passWeakness:
		var defs []gameDefinition
		for _, w := range weaknesses[:min(weaknessSlots, len(weaknesses))] {
			gt, ok := skillToGame[w.SkillArea]
			if !ok {
				continue
			}
			if def, found := lo.Find(gameCatalog, func(d gameDefinition) bool { return d.GameType == gt }); found {
				defs = append(defs, def)
			}
		}
		return defs
	case passFiller:
		remaining := lo.Filter(gameCatalog, func(def gameDefinition, _ int) bool {
			return !used[def.GameType]
		})
		shuffleInPlace(s.rnd, remaining)
		return remaining
	default:
		return nil
	}
}

// buildConfig dispatches to the per-type builder. A builder whose pool is
// below its minimum degrades to the bare level payload.
func (s *service) buildConfig(gt entity.GameType, level entity.Level, difficulty entity.DifficultyProfile, pool contentPool, conjugations []entity.ConjugationItem) any {
	switch gt {
	case entity.GameWordMatch:
		if cfg, ok := s.buildWordMatch(level, pool.WordMatch, difficulty.WordMatchCount); ok {
			return cfg
		}
	case entity.GameFillBlank:
		if cfg, ok := s.buildFillBlank(level, pool.FillBlanks, difficulty.FillBlankCount); ok {
			return cfg
		}
	case entity.GameCulturalQuiz:
		if cfg, ok := s.buildCulturalQuiz(level, pool.CulturalQuiz, difficulty.CulturalQuizCount); ok {
			return cfg
		}
	case entity.GameListening:
		if cfg, ok := s.buildListening(level, pool.WordMatch, difficulty.WordMatchCount); ok {
			return cfg
		}
	case entity.GameTranslation:
		if cfg, ok := s.buildTranslation(level, pool.WordMatch, difficulty.FillBlankCount); ok {
			return cfg
		}
	case entity.GameMemoryMatch:
		if cfg, ok := s.buildMemoryMatch(level, pool.WordMatch, 5); ok {
			return cfg
		}
	case entity.GameWordScramble:
		if cfg, ok := s.buildWordScramble(level, pool.WordMatch, 4); ok {
			return cfg
		}
	case entity.GameFlashcardSprint:
		if cfg, ok := s.buildFlashcardSprint(level, pool.WordMatch, 8); ok {
			return cfg
		}
	case entity.GameConversation:
		if cfg, ok := s.buildConversation(level); ok {
			return cfg
		}
	case entity.GameConjugationQuiz:
		if cfg, ok := s.buildConjugationQuiz(level, conjugations, 4); ok {
			return cfg
		}
	case entity.GameConjugationFill:
		if cfg, ok := s.buildConjugationFill(level, conjugations, 3); ok {
			return cfg
		}
	}
	return entity.BaseConfig{Level: level}
}

func (s *service) RecordAnswer(ctx context.Context, userID int64, skill entity.SkillArea, correct bool) error {
	skill = entity.NormalizeSkillArea(skill)
	if skill == "" {
		return entity.ErrInvalidSkillArea
	}

	record, err := s.weaknesses.FindBySkillArea(ctx, userID, skill)
	if err != nil {
		return err
	}
	now := s.clock()
	if record == nil {
		var count int32
		if !correct {
			count = 1
		}
		_, err = s.weaknesses.Create(ctx, &entity.WeaknessRecord{
			UserID:     userID,
			SkillArea:  skill,
			ErrorCount: count,
			LastTested: now,
		})
		return err
	}
	if !correct {
		record.ErrorCount++
	}
	record.LastTested = now
	_, err = s.weaknesses.Update(ctx, record)
	return err
}

func (s *service) ListWeaknesses(ctx context.Context, userID int64) ([]entity.WeaknessRecord, error) {
	return s.weaknesses.ListByUser(ctx, userID)
}
