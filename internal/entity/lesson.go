package entity

import "strings"

// GamesBundleOrder marks the per-module lesson row that carries deck-wide
// game content instead of ordinary study material.
const GamesBundleOrder = 999

// Lesson is a single curriculum unit at a CEFR level within a module.
type Lesson struct {
	ID      int64
	Level   Level
	Module  string
	Order   int32
	Title   string
	Content LessonContent
}

// IsGamesBundle reports whether the lesson row is a games-content bundle.
func (l *Lesson) IsGamesBundle() bool {
	return l.Order == GamesBundleOrder
}

// Validate checks required fields before persistence.
func (l *Lesson) Validate() error {
	if ParseLevel(string(l.Level)) == LevelUnspecified {
		return ErrInvalidLesson
	}
	if strings.TrimSpace(l.Module) == "" || strings.TrimSpace(l.Title) == "" {
		return ErrInvalidLesson
	}
	return nil
}

// LessonContent is the structured payload stored in a lesson's content
// column. Curriculum is externally authored, so every field is optional
// and consumers skip entries that miss required sub-fields.
type LessonContent struct {
	Vocabulary  []VocabEntry       `json:"vocabulary,omitempty"`
	Conjugation []ConjugationEntry `json:"conjugation,omitempty"`
	GameContent GameContent        `json:"game_content,omitempty"`
}

// VocabEntry is a vocabulary row as authored inside ordinary lessons.
type VocabEntry struct {
	Arabic    string `json:"arabic"`
	Romanized string `json:"romanized,omitempty"`
	English   string `json:"english"`
}

// GameContent groups ready-made game items by category inside a games bundle.
type GameContent struct {
	WordMatch    []VocabularyItem   `json:"word_match,omitempty"`
	FillBlanks   []FillBlankItem    `json:"fill_blanks,omitempty"`
	CulturalQuiz []CulturalQuizItem `json:"cultural_quiz,omitempty"`
}

// Empty reports whether no category holds any item.
func (gc GameContent) Empty() bool {
	return len(gc.WordMatch) == 0 && len(gc.FillBlanks) == 0 && len(gc.CulturalQuiz) == 0
}

// VocabularyItem is the universal vocabulary substrate consumed by
// vocabulary-driven game builders. Derived, never persisted on its own.
type VocabularyItem struct {
	Arabic  string `json:"darija_arabic"`
	Latin   string `json:"darija_latin"`
	English string `json:"english"`
}

// FillBlankItem is an authored fill-in-the-blank exercise.
type FillBlankItem struct {
	SentenceArabic string `json:"sentence_arabic"`
	SentenceLatin  string `json:"sentence_latin"`
	English        string `json:"english,omitempty"`
	AnswerArabic   string `json:"answer_arabic"`
	AnswerLatin    string `json:"answer_latin"`
	Hint           string `json:"hint,omitempty"`
}

// CulturalQuizItem is an authored multiple-choice culture question. The
// distractor pool may be short; builders pad it from sibling answers.
type CulturalQuizItem struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Distractors   []string `json:"distractors,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Tense names a verb tense column in a conjugation table.
type Tense string

const (
	TensePresent  Tense = "present"
	TensePast     Tense = "past"
	TenseFuture   Tense = "future"
	TenseNegative Tense = "negative"
)

// Tenses lists the supported tenses in the order builders expand them.
func Tenses() []Tense {
	return []Tense{TensePresent, TensePast, TenseFuture, TenseNegative}
}

// Label returns the learner-facing tense name.
func (t Tense) Label() string { return string(t) }

// ConjugationEntry is an authored verb conjugation table, keyed by
// pronoun within each tense. Absent tenses stay nil.
type ConjugationEntry struct {
	Verb       string            `json:"verb"`
	VerbArabic string            `json:"verb_arabic,omitempty"`
	English    string            `json:"english,omitempty"`
	Present    map[string]string `json:"present,omitempty"`
	Past       map[string]string `json:"past,omitempty"`
	Future     map[string]string `json:"future,omitempty"`
	Negative   map[string]string `json:"negative,omitempty"`
}

// Forms returns the pronoun→form table for a tense (nil when absent).
func (e ConjugationEntry) Forms(t Tense) map[string]string {
	switch t {
	case TensePresent:
		return e.Present
	case TensePast:
		return e.Past
	case TenseFuture:
		return e.Future
	case TenseNegative:
		return e.Negative
	default:
		return nil
	}
}

// ConjugationItem is the derived conjugation substrate consumed by the
// conjugation builders: one verb with all its usable tense tables.
type ConjugationItem struct {
	Verb       string
	VerbArabic string
	English    string
	Tenses     map[Tense]map[string]string
}

// PronounLabels maps Darija pronouns to learner-facing English glosses.
var PronounLabels = map[string]string{
	"ana":   "I",
	"nta":   "you (m)",
	"nti":   "you (f)",
	"huwa":  "he",
	"hiya":  "she",
	"hna":   "we",
	"ntuma": "you (pl)",
	"huma":  "they",
}

// PronounLabel returns the gloss for a pronoun, falling back to the pronoun itself.
func PronounLabel(pronoun string) string {
	if label, ok := PronounLabels[pronoun]; ok {
		return label
	}
	return pronoun
}
