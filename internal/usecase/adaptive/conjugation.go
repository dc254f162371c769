package adaptive

import (
	"fmt"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/samber/lo"
)

// conjugationCandidate is one askable (verb, tense, pronoun) combination.
type conjugationCandidate struct {
	Verb        string
	VerbArabic  string
	English     string
	Tense       entity.Tense
	Pronoun     string
	CorrectForm string
	TenseForms  map[string]string
}

// conjugationCandidates expands conjugation tables into askable combinations,
// skipping empty forms.
func conjugationCandidates(items []entity.ConjugationItem) []conjugationCandidate {
	var candidates []conjugationCandidate
	for _, item := range items {
		for _, tense := range entity.Tenses() {
			forms := item.Tenses[tense]
			for pronoun, form := range forms {
				if form == "" {
					continue
				}
				candidates = append(candidates, conjugationCandidate{
					Verb:        item.Verb,
					VerbArabic:  item.VerbArabic,
					English:     item.English,
					Tense:       tense,
					Pronoun:     pronoun,
					CorrectForm: form,
					TenseForms:  forms,
				})
			}
		}
	}
	return candidates
}

// buildConjugationQuiz asks for the right conjugated form of a verb given a
// pronoun and tense. Distractors are drawn from the distinct forms across
// every candidate.
func (s *service) buildConjugationQuiz(level entity.Level, items []entity.ConjugationItem, count int) (entity.QuizConfig, bool) {
	candidates := conjugationCandidates(items)
	if len(candidates) < 4 {
		return entity.QuizConfig{}, false
	}

	allForms := lo.Uniq(lo.Map(candidates, func(c conjugationCandidate, _ int) string {
		return c.CorrectForm
	}))

	questions := make([]entity.QuizQuestion, 0, count)
	for _, item := range sample(s.rnd, candidates, count) {
		distractors := lo.Filter(allForms, func(f string, _ int) bool {
			return f != item.CorrectForm
		})

		options := []entity.Option{{Latin: item.CorrectForm, Correct: true}}
		for _, d := range sample(s.rnd, distractors, 3) {
			options = append(options, entity.Option{Latin: d})
		}

		questions = append(questions, entity.QuizQuestion{
			English: fmt.Sprintf("Conjugate '%s' (%s) - %s (%s), %s tense",
				item.Verb, item.English, item.Pronoun, entity.PronounLabel(item.Pronoun), item.Tense.Label()),
			Question: entity.AnswerPair{Arabic: item.VerbArabic, Latin: item.Verb},
			Options:  labelOptions(s.rnd, options),
		})
	}
	return entity.QuizConfig{Level: level, Questions: questions}, true
}

// buildConjugationFill presents a gap sentence for a conjugated form.
// Distractors prefer sibling pronoun forms of the same verb and tense, then
// fall back to other candidates' forms when the table is small.
func (s *service) buildConjugationFill(level entity.Level, items []entity.ConjugationItem, count int) (entity.FillBlankConfig, bool) {
	candidates := conjugationCandidates(items)
	if len(candidates) < 3 {
		return entity.FillBlankConfig{}, false
	}

	questions := make([]entity.FillBlankQuestion, 0, count)
	for _, item := range sample(s.rnd, candidates, count) {
		var distractors []string
		for pronoun, form := range item.TenseForms {
			if pronoun != item.Pronoun && form != item.CorrectForm {
				distractors = append(distractors, form)
			}
		}
		if len(distractors) < 3 {
			for _, c := range candidates {
				if c.CorrectForm != item.CorrectForm && !lo.Contains(distractors, c.CorrectForm) {
					distractors = append(distractors, c.CorrectForm)
				}
			}
		}

		options := []entity.Option{{Latin: item.CorrectForm, Correct: true}}
		for _, d := range sample(s.rnd, distractors, 3) {
			options = append(options, entity.Option{Latin: d})
		}

		questions = append(questions, entity.FillBlankQuestion{
			SentenceLatin: fmt.Sprintf("%s ___ (%s, %s)", item.Pronoun, item.Verb, item.Tense.Label()),
			English: fmt.Sprintf("%s - %s tense of '%s' (%s)",
				entity.PronounLabel(item.Pronoun), item.Tense.Label(), item.Verb, item.English),
			Answer: entity.AnswerPair{Latin: item.CorrectForm},
			Hint: fmt.Sprintf("Think about how '%s' changes for %s in the %s",
				item.Verb, item.Pronoun, item.Tense.Label()),
			Options: labelOptions(s.rnd, options),
		})
	}
	return entity.FillBlankConfig{Level: level, Questions: questions}, true
}
