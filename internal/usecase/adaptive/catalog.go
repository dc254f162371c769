package adaptive

import "github.com/atlaslingo/darlingo/internal/entity"

// sessionSize caps how many games one generated session contains.
const sessionSize = 5

// weaknessSlots bounds how many top-ranked weaknesses steer game choice.
const weaknessSlots = 2

// gameDefinition is the static identity of a game type shown to clients.
type gameDefinition struct {
	GameType    entity.GameType
	Title       string
	Description string
}

// gameCatalog lists every game type the platform can generate. Session
// composition picks a subset from this pool each time.
var gameCatalog = []gameDefinition{
	{entity.GameWordMatch, "Word Match", "Match Darija words with their meanings"},
	{entity.GameFillBlank, "Fill in the Blank", "Complete the sentence with the correct Darija word"},
	{entity.GameListening, "Quick Quiz", "Choose the correct meaning of a Darija word"},
	{entity.GameTranslation, "Translation", "Translate words between Darija and English"},
	{entity.GameConversation, "Conversation Practice", "Practice conversation with an AI partner in Darija"},
	{entity.GameCulturalQuiz, "Cultural Quiz", "Test your knowledge of Moroccan culture"},
	{entity.GameMemoryMatch, "Memory Match", "Find matching Darija-English word pairs"},
	{entity.GameWordScramble, "Word Scramble", "Unscramble the letters to form Darija words"},
	{entity.GameFlashcardSprint, "Flashcard Sprint", "Quick-fire flashcard review of vocabulary"},
	{entity.GameConjugationQuiz, "Conjugation Quiz", "Pick the correct conjugation of a Darija verb"},
	{entity.GameConjugationFill, "Conjugation Challenge", "Fill in the correct verb conjugation"},
}

// coreGameTypes always open a session regardless of weakness signal.
var coreGameTypes = map[entity.GameType]bool{
	entity.GameWordMatch:    true,
	entity.GameConversation: true,
}

// skillToGame maps a weakness skill area to the game type that drills it.
var skillToGame = map[entity.SkillArea]entity.GameType{
	entity.SkillVocabulary:   entity.GameWordMatch,
	entity.SkillGrammar:      entity.GameFillBlank,
	entity.SkillListening:    entity.GameListening,
	entity.SkillTranslation:  entity.GameTranslation,
	entity.SkillConversation: entity.GameConversation,
	entity.SkillConjugation:  entity.GameConjugationQuiz,
}

// GameSkillArea maps a game type back to the skill area its answers train.
// Exposed for the gameplay submission path.
func GameSkillArea(gt entity.GameType) entity.SkillArea {
	switch gt {
	case entity.GameWordMatch, entity.GameMemoryMatch, entity.GameWordScramble, entity.GameFlashcardSprint:
		return entity.SkillVocabulary
	case entity.GameFillBlank, entity.GameCulturalQuiz:
		return entity.SkillGrammar
	case entity.GameListening:
		return entity.SkillListening
	case entity.GameTranslation:
		return entity.SkillTranslation
	case entity.GameConversation:
		return entity.SkillConversation
	case entity.GameConjugationQuiz, entity.GameConjugationFill:
		return entity.SkillConjugation
	default:
		return entity.SkillArea(gt)
	}
}

// KnownGameType reports whether gt is part of the catalog.
func KnownGameType(gt entity.GameType) bool {
	for _, def := range gameCatalog {
		if def.GameType == gt {
			return true
		}
	}
	return false
}

// levelDifficulty scales per-game item counts with the CEFR level.
var levelDifficulty = map[entity.Level]entity.DifficultyProfile{
	entity.LevelA1: {WordMatchCount: 4, FillBlankCount: 2, CulturalQuizCount: 2},
	entity.LevelA2: {WordMatchCount: 5, FillBlankCount: 3, CulturalQuizCount: 3},
	entity.LevelB1: {WordMatchCount: 6, FillBlankCount: 4, CulturalQuizCount: 4},
	entity.LevelB2: {WordMatchCount: 8, FillBlankCount: 5, CulturalQuizCount: 4},
}

func difficultyFor(level entity.Level) entity.DifficultyProfile {
	if profile, ok := levelDifficulty[level]; ok {
		return profile
	}
	return levelDifficulty[entity.LevelA2]
}
