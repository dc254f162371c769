package entity

// GameType identifies one of the fixed practice game kinds.
type GameType string

const (
	GameWordMatch       GameType = "word_match"
	GameFillBlank       GameType = "fill_blank"
	GameListening       GameType = "listening"
	GameTranslation     GameType = "translation"
	GameConversation    GameType = "conversation"
	GameCulturalQuiz    GameType = "cultural_quiz"
	GameMemoryMatch     GameType = "memory_match"
	GameWordScramble    GameType = "word_scramble"
	GameFlashcardSprint GameType = "flashcard_sprint"
	GameConjugationQuiz GameType = "conjugation_quiz"
	GameConjugationFill GameType = "conjugation_fill"
)

// GameConfig is one renderable game inside a generated session. Config
// holds the type-specific payload; for a game whose content pool was too
// small it degrades to BaseConfig, which clients treat as "skip".
type GameConfig struct {
	GameType    GameType `json:"game_type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Config      any      `json:"config"`
}

// BaseConfig is the minimal payload shared by every game config.
type BaseConfig struct {
	Level Level `json:"level"`
}

// Option is a selectable bilingual answer in a multiple-choice question.
// IDs are assigned after shuffling so position carries no signal.
type Option struct {
	ID      string `json:"id,omitempty"`
	Arabic  string `json:"arabic"`
	Latin   string `json:"latin"`
	Correct bool   `json:"correct"`
}

// TextOption is a plain-text answer used by the cultural quiz.
type TextOption struct {
	ID      string `json:"id,omitempty"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// AnswerPair carries the two written forms of a single answer.
type AnswerPair struct {
	Arabic string `json:"arabic"`
	Latin  string `json:"latin"`
}

// WordPair is one entry of a word-match board.
type WordPair struct {
	ID      int    `json:"id"`
	Arabic  string `json:"darija_arabic"`
	Latin   string `json:"darija_latin"`
	English string `json:"english"`
}

// WordMatchConfig pairs studied words with their meanings. No distractors;
// the board itself is the puzzle.
type WordMatchConfig struct {
	Level Level      `json:"level"`
	Pairs []WordPair `json:"pairs"`
}

// FillBlankQuestion is a gap sentence plus shuffled options.
type FillBlankQuestion struct {
	SentenceArabic string     `json:"sentence_arabic"`
	SentenceLatin  string     `json:"sentence_latin"`
	English        string     `json:"english"`
	Answer         AnswerPair `json:"answer"`
	Hint           string     `json:"hint"`
	Options        []Option   `json:"options"`
}

// FillBlankConfig is the fill-in-the-blank game payload. Also reused by
// the translation and conjugation-fill games, which render the same shape.
type FillBlankConfig struct {
	Level     Level               `json:"level"`
	Questions []FillBlankQuestion `json:"questions"`
}

// QuizQuestion shows a prompt word and asks for the matching option.
type QuizQuestion struct {
	English  string     `json:"english"`
	Question AnswerPair `json:"question"`
	Options  []Option   `json:"options"`
}

// QuizConfig is the payload for listening and conjugation-quiz games.
type QuizConfig struct {
	Level     Level          `json:"level"`
	Questions []QuizQuestion `json:"questions"`
}

// CulturalQuestion is one culture question with shuffled text options.
type CulturalQuestion struct {
	Question    string       `json:"question"`
	Explanation string       `json:"explanation"`
	Options     []TextOption `json:"options"`
}

// CulturalQuizConfig is the cultural quiz payload.
type CulturalQuizConfig struct {
	Level     Level              `json:"level"`
	Questions []CulturalQuestion `json:"questions"`
}

// MemoryPair is one card pair of the memory game.
type MemoryPair struct {
	ID      int    `json:"id"`
	Darija  string `json:"darija"`
	English string `json:"english"`
}

// MemoryMatchConfig is the memory game payload.
type MemoryMatchConfig struct {
	Level Level        `json:"level"`
	Pairs []MemoryPair `json:"pairs"`
}

// ScrambleWord is a word to unscramble plus its meaning and script hint.
type ScrambleWord struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Arabic  string `json:"arabic"`
}

// WordScrambleConfig is the word scramble payload.
type WordScrambleConfig struct {
	Level Level          `json:"level"`
	Words []ScrambleWord `json:"words"`
}

// Flashcard is a front/back review card.
type Flashcard struct {
	FrontArabic string `json:"front_arabic"`
	FrontLatin  string `json:"front_latin"`
	Back        string `json:"back"`
}

// FlashcardSprintConfig is the timed flashcard review payload.
type FlashcardSprintConfig struct {
	Level Level       `json:"level"`
	Cards []Flashcard `json:"cards"`
}

// Phrase is a trilingual utterance used in conversation scenarios.
type Phrase struct {
	Arabic  string `json:"arabic"`
	Latin   string `json:"latin"`
	English string `json:"english"`
}

// ConversationMessage is one turn of a conversation transcript.
type ConversationMessage struct {
	Role    string `json:"role"`
	Arabic  string `json:"arabic"`
	Latin   string `json:"latin"`
	English string `json:"english"`
}

// ConversationScenario describes one roleplay situation from the fixed
// per-level catalog.
type ConversationScenario struct {
	Context            string   `json:"context"`
	ScenarioPrompt     string   `json:"scenario_prompt"`
	TargetVocabulary   []string `json:"target_vocabulary"`
	InitialMessage     Phrase   `json:"initial_message"`
	InitialSuggestions []Phrase `json:"initial_suggestions"`
}

// ScenarioSummary is the scenario echo embedded in the conversation config
// so the chat proxy can rebuild its system prompt later.
type ScenarioSummary struct {
	Context          string   `json:"context"`
	ScenarioPrompt   string   `json:"scenario_prompt"`
	TargetVocabulary []string `json:"target_vocabulary"`
}

// ConversationConfig is the conversation practice payload.
type ConversationConfig struct {
	Level            Level                 `json:"level"`
	Context          string                `json:"context"`
	ScenarioPrompt   string                `json:"scenario_prompt"`
	TargetVocabulary []string              `json:"target_vocabulary"`
	Messages         []ConversationMessage `json:"messages"`
	Suggestions      []Phrase              `json:"suggestions"`
	Scenario         ScenarioSummary       `json:"scenario"`
}

// DifficultyProfile fixes how many items each game draws at a level.
// Process-wide static configuration, never mutated.
type DifficultyProfile struct {
	WordMatchCount    int
	FillBlankCount    int
	CulturalQuizCount int
}
