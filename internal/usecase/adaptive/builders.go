package adaptive

import (
	"fmt"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/samber/lo"
)

// labelOptions shuffles options and assigns sequential ids afterwards, so an
// option's letter never reveals which one is correct.
func labelOptions(rnd Rand, options []entity.Option) []entity.Option {
	shuffleInPlace(rnd, options)
	for i := range options {
		options[i].ID = string(rune('a' + i))
	}
	return options
}

func labelTextOptions(rnd Rand, options []entity.TextOption) []entity.TextOption {
	shuffleInPlace(rnd, options)
	for i := range options {
		options[i].ID = string(rune('a' + i))
	}
	return options
}

func (s *service) buildWordMatch(level entity.Level, items []entity.VocabularyItem, count int) (entity.WordMatchConfig, bool) {
	if len(items) == 0 {
		return entity.WordMatchConfig{}, false
	}
	pairs := make([]entity.WordPair, 0, count)
	for i, item := range sample(s.rnd, items, count) {
		pairs = append(pairs, entity.WordPair{
			ID:      i + 1,
			Arabic:  item.Arabic,
			Latin:   item.Latin,
			English: item.English,
		})
	}
	return entity.WordMatchConfig{Level: level, Pairs: pairs}, true
}

func (s *service) buildFillBlank(level entity.Level, items []entity.FillBlankItem, count int) (entity.FillBlankConfig, bool) {
	if len(items) == 0 {
		return entity.FillBlankConfig{}, false
	}

	// Distractors come from the whole pool's answers, not just the sampled
	// subset, deduplicated by answer pair.
	allAnswers := lo.UniqBy(
		lo.Map(items, func(it entity.FillBlankItem, _ int) entity.AnswerPair {
			return entity.AnswerPair{Arabic: it.AnswerArabic, Latin: it.AnswerLatin}
		}),
		func(a entity.AnswerPair) entity.AnswerPair { return a },
	)

	questions := make([]entity.FillBlankQuestion, 0, count)
	for _, item := range sample(s.rnd, items, count) {
		correct := entity.AnswerPair{Arabic: item.AnswerArabic, Latin: item.AnswerLatin}
		distractors := lo.Filter(allAnswers, func(a entity.AnswerPair, _ int) bool {
			return a.Latin != correct.Latin || a.Arabic != correct.Arabic
		})

		options := []entity.Option{{Arabic: correct.Arabic, Latin: correct.Latin, Correct: true}}
		for _, d := range sample(s.rnd, distractors, 3) {
			options = append(options, entity.Option{Arabic: d.Arabic, Latin: d.Latin})
		}

		english := item.English
		if english == "" {
			english = item.Hint
		}
		questions = append(questions, entity.FillBlankQuestion{
			SentenceArabic: item.SentenceArabic,
			SentenceLatin:  item.SentenceLatin,
			English:        english,
			Answer:         correct,
			Hint:           item.Hint,
			Options:        labelOptions(s.rnd, options),
		})
	}
	return entity.FillBlankConfig{Level: level, Questions: questions}, true
}

func (s *service) buildCulturalQuiz(level entity.Level, items []entity.CulturalQuizItem, count int) (entity.CulturalQuizConfig, bool) {
	if len(items) == 0 {
		return entity.CulturalQuizConfig{}, false
	}

	allCorrect := lo.FilterMap(items, func(it entity.CulturalQuizItem, _ int) (string, bool) {
		return it.CorrectAnswer, it.CorrectAnswer != ""
	})

	questions := make([]entity.CulturalQuestion, 0, count)
	for _, item := range sample(s.rnd, items, count) {
		distractors := append([]string(nil), item.Distractors...)

		// Thin distractor pools get padded from other questions' answers.
		if len(distractors) < 3 {
			extra := lo.Filter(allCorrect, func(a string, _ int) bool {
				return a != item.CorrectAnswer && !lo.Contains(distractors, a)
			})
			distractors = append(distractors, sample(s.rnd, extra, 3-len(distractors))...)
		}

		options := []entity.TextOption{{Text: item.CorrectAnswer, Correct: true}}
		for _, d := range distractors[:min(3, len(distractors))] {
			options = append(options, entity.TextOption{Text: d})
		}

		questions = append(questions, entity.CulturalQuestion{
			Question:    item.Question,
			Explanation: item.Explanation,
			Options:     labelTextOptions(s.rnd, options),
		})
	}
	return entity.CulturalQuizConfig{Level: level, Questions: questions}, true
}

// buildListening shows a Darija word and asks for its English meaning.
// Needs at least 4 vocabulary items to produce meaningful distractors.
func (s *service) buildListening(level entity.Level, vocab []entity.VocabularyItem, count int) (entity.QuizConfig, bool) {
	if len(vocab) < 4 {
		return entity.QuizConfig{}, false
	}

	questions := make([]entity.QuizQuestion, 0, count)
	for _, item := range sample(s.rnd, vocab, count) {
		meanings := lo.Uniq(lo.FilterMap(vocab, func(v entity.VocabularyItem, _ int) (string, bool) {
			return v.English, v.English != item.English
		}))

		options := []entity.Option{{Latin: item.English, Correct: true}}
		for _, d := range sample(s.rnd, meanings, 3) {
			options = append(options, entity.Option{Latin: d})
		}

		questions = append(questions, entity.QuizQuestion{
			English:  "What does this word mean?",
			Question: entity.AnswerPair{Arabic: item.Arabic, Latin: item.Latin},
			Options:  labelOptions(s.rnd, options),
		})
	}
	return entity.QuizConfig{Level: level, Questions: questions}, true
}

// buildTranslation is the reverse direction: English prompt, Darija options.
func (s *service) buildTranslation(level entity.Level, vocab []entity.VocabularyItem, count int) (entity.FillBlankConfig, bool) {
	if len(vocab) < 4 {
		return entity.FillBlankConfig{}, false
	}

	questions := make([]entity.FillBlankQuestion, 0, count)
	for _, item := range sample(s.rnd, vocab, count) {
		correct := entity.AnswerPair{Arabic: item.Arabic, Latin: item.Latin}
		distractors := lo.FilterMap(vocab, func(v entity.VocabularyItem, _ int) (entity.AnswerPair, bool) {
			return entity.AnswerPair{Arabic: v.Arabic, Latin: v.Latin}, v.Arabic != correct.Arabic
		})

		options := []entity.Option{{Arabic: correct.Arabic, Latin: correct.Latin, Correct: true}}
		for _, d := range sample(s.rnd, distractors, 3) {
			options = append(options, entity.Option{Arabic: d.Arabic, Latin: d.Latin})
		}

		questions = append(questions, entity.FillBlankQuestion{
			SentenceArabic: "___",
			SentenceLatin:  "___",
			English:        fmt.Sprintf("How do you say '%s' in Darija?", item.English),
			Answer:         correct,
			Hint:           item.English,
			Options:        labelOptions(s.rnd, options),
		})
	}
	return entity.FillBlankConfig{Level: level, Questions: questions}, true
}

func (s *service) buildMemoryMatch(level entity.Level, vocab []entity.VocabularyItem, count int) (entity.MemoryMatchConfig, bool) {
	if len(vocab) < 3 {
		return entity.MemoryMatchConfig{}, false
	}
	pairs := make([]entity.MemoryPair, 0, count)
	for i, item := range sample(s.rnd, vocab, count) {
		darija := item.Latin
		if darija == "" {
			darija = item.Arabic
		}
		pairs = append(pairs, entity.MemoryPair{ID: i, Darija: darija, English: item.English})
	}
	return entity.MemoryMatchConfig{Level: level, Pairs: pairs}, true
}

func (s *service) buildWordScramble(level entity.Level, vocab []entity.VocabularyItem, count int) (entity.WordScrambleConfig, bool) {
	eligible := lo.Filter(vocab, func(v entity.VocabularyItem, _ int) bool {
		return len(v.Latin) >= 3
	})
	if len(eligible) < 2 {
		return entity.WordScrambleConfig{}, false
	}
	words := make([]entity.ScrambleWord, 0, count)
	for _, item := range sample(s.rnd, eligible, count) {
		words = append(words, entity.ScrambleWord{
			Word:    item.Latin,
			Meaning: item.English,
			Arabic:  item.Arabic,
		})
	}
	return entity.WordScrambleConfig{Level: level, Words: words}, true
}

func (s *service) buildFlashcardSprint(level entity.Level, vocab []entity.VocabularyItem, count int) (entity.FlashcardSprintConfig, bool) {
	if len(vocab) < 3 {
		return entity.FlashcardSprintConfig{}, false
	}
	cards := make([]entity.Flashcard, 0, count)
	for _, item := range sample(s.rnd, vocab, count) {
		cards = append(cards, entity.Flashcard{
			FrontArabic: item.Arabic,
			FrontLatin:  item.Latin,
			Back:        item.English,
		})
	}
	return entity.FlashcardSprintConfig{Level: level, Cards: cards}, true
}

func (s *service) buildConversation(level entity.Level) (entity.ConversationConfig, bool) {
	scenarios := scenariosForLevel(level)
	if len(scenarios) == 0 {
		return entity.ConversationConfig{}, false
	}
	scenario := choose(s.rnd, scenarios)
	return entity.ConversationConfig{
		Level:            level,
		Context:          scenario.Context,
		ScenarioPrompt:   scenario.ScenarioPrompt,
		TargetVocabulary: scenario.TargetVocabulary,
		Messages: []entity.ConversationMessage{{
			Role:    "ai",
			Arabic:  scenario.InitialMessage.Arabic,
			Latin:   scenario.InitialMessage.Latin,
			English: scenario.InitialMessage.English,
		}},
		Suggestions: scenario.InitialSuggestions,
		Scenario: entity.ScenarioSummary{
			Context:          scenario.Context,
			ScenarioPrompt:   scenario.ScenarioPrompt,
			TargetVocabulary: scenario.TargetVocabulary,
		},
	}, true
}
