package entity

import "errors"

// Domain errors for users and authentication.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUserName  = errors.New("invalid display name")
	ErrInvalidUserEmail = errors.New("invalid user email")
	ErrDuplicateUser    = errors.New("user already exists")
	ErrInvalidPassword  = errors.New("invalid credentials")
	ErrInvalidToken     = errors.New("invalid or expired token")
)

// Domain errors for curriculum and gameplay aggregates.
var (
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrInvalidLesson       = errors.New("invalid lesson")
	ErrInvalidGameType     = errors.New("invalid game type")
	ErrInvalidSkillArea    = errors.New("invalid skill area")
	ErrInvalidScore        = errors.New("score must be between 0 and 1")
	ErrBadgeNotFound       = errors.New("badge not found")
	ErrWeaknessNotFound    = errors.New("weakness record not found")
	ErrInvalidFilter       = errors.New("invalid filter expression")
	ErrEmptyChatTranscript = errors.New("conversation transcript is empty")
)
