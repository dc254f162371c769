package entity

import "strings"

// Level represents a CEFR proficiency level.
type Level string

const (
	LevelUnspecified Level = ""
	LevelA1          Level = "a1"
	LevelA2          Level = "a2"
	LevelB1          Level = "b1"
	LevelB2          Level = "b2"
)

// Code returns the lowercase level code (without defaulting).
func (l Level) Code() string {
	return strings.TrimSpace(string(l))
}

// Label returns the human-readable name shown in session responses.
func (l Level) Label() string {
	switch l {
	case LevelA1:
		return "Beginner"
	case LevelA2:
		return "Elementary"
	case LevelB1:
		return "Intermediate"
	case LevelB2:
		return "Upper-Intermediate"
	default:
		return strings.ToUpper(l.Code())
	}
}

// NormalizeLevel ensures the level falls back to a supported value (defaults to a2).
func NormalizeLevel(l Level) Level {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2:
		return l
	default:
		return LevelA2
	}
}

// ParseLevel converts an arbitrary string into a supported Level value.
func ParseLevel(code string) Level {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "a1":
		return LevelA1
	case "a2":
		return LevelA2
	case "b1":
		return LevelB1
	case "b2":
		return LevelB2
	default:
		return LevelUnspecified
	}
}

// Levels lists supported levels from easiest to hardest.
func Levels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2}
}

// SkillArea names a tracked learning skill used by the weakness ledger.
type SkillArea string

const (
	SkillVocabulary   SkillArea = "vocabulary"
	SkillGrammar      SkillArea = "grammar"
	SkillListening    SkillArea = "listening"
	SkillTranslation  SkillArea = "translation"
	SkillConversation SkillArea = "conversation"
	SkillConjugation  SkillArea = "conjugation"
)

// NormalizeSkillArea trims and lowercases an externally supplied skill name.
func NormalizeSkillArea(skill SkillArea) SkillArea {
	return SkillArea(strings.ToLower(strings.TrimSpace(string(skill))))
}
