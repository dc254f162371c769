package adaptive

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/samber/lo"
)

// contentPool aggregates games-bundle items by category, concatenated
// across every matching module.
type contentPool struct {
	WordMatch    []entity.VocabularyItem
	FillBlanks   []entity.FillBlankItem
	CulturalQuiz []entity.CulturalQuizItem
}

func (p contentPool) empty() bool {
	return len(p.WordMatch) == 0 && len(p.FillBlanks) == 0 && len(p.CulturalQuiz) == 0
}

// loadGameContent fetches games-bundle content for the level, restricted to
// the given modules when any are supplied. Scopes are tried in order: the
// completed-module scope first, then the whole level, so a first-session
// user is never starved of content.
func (s *service) loadGameContent(ctx context.Context, level entity.Level, modules []string) (contentPool, error) {
	scopes := make([][]string, 0, 2)
	if len(modules) > 0 {
		scopes = append(scopes, modules)
	}
	scopes = append(scopes, nil)

	var pool contentPool
	for _, scope := range scopes {
		bundles, err := s.lessons.GameBundles(ctx, level, scope)
		if err != nil {
			return contentPool{}, err
		}
		pool = mergeBundles(bundles)
		if !pool.empty() {
			return pool, nil
		}
	}
	return pool, nil
}

func mergeBundles(bundles []entity.LessonContent) contentPool {
	var pool contentPool
	for _, bundle := range bundles {
		pool.WordMatch = append(pool.WordMatch, bundle.GameContent.WordMatch...)
		pool.FillBlanks = append(pool.FillBlanks, bundle.GameContent.FillBlanks...)
		pool.CulturalQuiz = append(pool.CulturalQuiz, bundle.GameContent.CulturalQuiz...)
	}
	return pool
}

// mergeVocabulary appends extra vocabulary onto the pool, dropping
// duplicates by (script form, translation) pair.
func mergeVocabulary(pool, extra []entity.VocabularyItem) []entity.VocabularyItem {
	return lo.UniqBy(append(pool, extra...), func(v entity.VocabularyItem) string {
		return v.Arabic + "\x00" + v.English
	})
}
