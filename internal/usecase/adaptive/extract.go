package adaptive

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// lessonVocabulary collects vocabulary entries from every lesson the user
// has completed at the level. Entries missing either the script form or the
// translation are skipped rather than failing the session.
func (s *service) lessonVocabulary(ctx context.Context, userID int64, level entity.Level) ([]entity.VocabularyItem, error) {
	contents, err := s.lessons.CompletedLessonContent(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	var vocab []entity.VocabularyItem
	for _, content := range contents {
		for _, entry := range content.Vocabulary {
			if entry.Arabic == "" || entry.English == "" {
				continue
			}
			vocab = append(vocab, entity.VocabularyItem{
				Arabic:  entry.Arabic,
				Latin:   entry.Romanized,
				English: entry.English,
			})
		}
	}
	return vocab, nil
}

// lessonConjugations collects conjugation tables from completed lessons.
// An entry needs a verb name and at least a present-tense table to be
// usable; other tenses are carried when present.
func (s *service) lessonConjugations(ctx context.Context, userID int64, level entity.Level) ([]entity.ConjugationItem, error) {
	contents, err := s.lessons.CompletedLessonContent(ctx, userID, level)
	if err != nil {
		return nil, err
	}
	var items []entity.ConjugationItem
	for _, content := range contents {
		for _, entry := range content.Conjugation {
			if entry.Verb == "" || len(entry.Present) == 0 {
				continue
			}
			item := entity.ConjugationItem{
				Verb:       entry.Verb,
				VerbArabic: entry.VerbArabic,
				English:    entry.English,
				Tenses:     make(map[entity.Tense]map[string]string),
			}
			for _, tense := range entity.Tenses() {
				if forms := entry.Forms(tense); len(forms) > 0 {
					item.Tenses[tense] = forms
				}
			}
			items = append(items, item)
		}
	}
	return items, nil
}
