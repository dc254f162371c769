// Package types provides sql.Scanner / driver.Valuer wrappers for JSON
// columns shared by the repositories.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// LessonContentJSON stores entity.LessonContent as a JSON text column.
type LessonContentJSON entity.LessonContent

// Scan implements sql.Scanner.
func (c *LessonContentJSON) Scan(value any) error {
	if value == nil {
		*c = LessonContentJSON{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type for LessonContentJSON: %T", value)
	}
}

// Value implements driver.Valuer.
func (c LessonContentJSON) Value() (driver.Value, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Content converts back to the entity type.
func (c LessonContentJSON) Content() entity.LessonContent {
	return entity.LessonContent(c)
}
