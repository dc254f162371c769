// Package mapping converts domain entities and errors into the shapes the
// HTTP API exposes.
package mapping

import (
	"errors"
	"net/http"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// HTTPStatus maps a domain error to an HTTP status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrInvalidLesson),
		errors.Is(err, entity.ErrInvalidGameType),
		errors.Is(err, entity.ErrInvalidSkillArea),
		errors.Is(err, entity.ErrInvalidScore),
		errors.Is(err, entity.ErrInvalidFilter),
		errors.Is(err, entity.ErrEmptyChatTranscript),
		errors.Is(err, entity.ErrInvalidUserEmail),
		errors.Is(err, entity.ErrInvalidUserName):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInvalidPassword),
		errors.Is(err, entity.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrLessonNotFound),
		errors.Is(err, entity.ErrBadgeNotFound),
		errors.Is(err, entity.ErrWeaknessNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicateUser):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
