// Package repository provides sqlx-backed implementations of the
// repository interfaces.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/infrastructure/database/types"
	"github.com/atlaslingo/darlingo/internal/repository"
	"github.com/atlaslingo/darlingo/pkg/filterexpr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type lessonRow struct {
	ID      int64                   `db:"id"`
	Level   string                  `db:"level"`
	Module  string                  `db:"module"`
	Ord     int32                   `db:"ord"`
	Title   string                  `db:"title"`
	Content types.LessonContentJSON `db:"content_json"`
}

func (r lessonRow) toEntity() entity.Lesson {
	return entity.Lesson{
		ID:      r.ID,
		Level:   entity.Level(r.Level),
		Module:  r.Module,
		Order:   r.Ord,
		Title:   r.Title,
		Content: r.Content.Content(),
	}
}

type lessonRepository struct{ db *sqlx.DB }

// NewLessonRepository creates a lesson repository over an open database.
func NewLessonRepository(db *sqlx.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	content := types.LessonContentJSON(lesson.Content)
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO lessons (level, module, ord, title, content_json) VALUES (?, ?, ?, ?, ?)`,
		string(lesson.Level), lesson.Module, lesson.Order, lesson.Title, content)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	created := *lesson
	created.ID = id
	return &created, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id int64) (*entity.Lesson, error) {
	var row lessonRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT id, level, module, ord, title, content_json FROM lessons WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	lesson := row.toEntity()
	return &lesson, nil
}

// listLessonParams is the binding target for the lessons filter schema.
type listLessonParams struct {
	Level        string
	Module       string
	Modules      []string
	ModulePrefix string
	TitlePrefix  string
	Order        *int32
	OrderGTE     *int32
	OrderLTE     *int32

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

func (r *lessonRepository) List(ctx context.Context, query *repository.ListLessonQuery) ([]entity.Lesson, int64, error) {
	var params listLessonParams
	if err := filterexpr.Bind(&query.FilterOrder, &params, listLessonsSchema); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", entity.ErrInvalidFilter, err)
	}

	var conds []string
	var args []any
	addCond := func(cond string, value any) {
		conds = append(conds, cond)
		args = append(args, value)
	}
	if params.Level != "" {
		addCond("level = ?", params.Level)
	}
	if params.Module != "" {
		addCond("module = ?", params.Module)
	}
	if params.ModulePrefix != "" {
		addCond("module LIKE ?", likePrefix(params.ModulePrefix))
	}
	if params.TitlePrefix != "" {
		addCond("title LIKE ?", likePrefix(params.TitlePrefix))
	}
	if params.Order != nil {
		addCond("ord = ?", *params.Order)
	}
	if params.OrderGTE != nil {
		addCond("ord >= ?", *params.OrderGTE)
	}
	if params.OrderLTE != nil {
		addCond("ord <= ?", *params.OrderLTE)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM lessons" + where
	var inArgs []any
	if len(params.Modules) > 0 {
		inClause := "module IN (?)"
		if where == "" {
			where = " WHERE " + inClause
		} else {
			where += " AND " + inClause
		}
		countQuery = "SELECT COUNT(*) FROM lessons" + where
		expanded, expandedArgs, err := sqlx.In(countQuery, append(append([]any{}, args...), params.Modules)...)
		if err != nil {
			return nil, 0, fmt.Errorf("expand module list: %w", err)
		}
		countQuery = expanded
		inArgs = expandedArgs
	}

	var total int64
	if len(inArgs) > 0 {
		if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), inArgs...); err != nil {
			return nil, 0, fmt.Errorf("count lessons: %w", err)
		}
	} else {
		if err := r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), args...); err != nil {
			return nil, 0, fmt.Errorf("count lessons: %w", err)
		}
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	pageNo := query.PageNo
	if pageNo < 1 {
		pageNo = 1
	}
	offset := (pageNo - 1) * pageSize

	orderBy := orderClause(listLessonsSchema.Order, params.PrimaryKey, params.PrimaryDesc, params.SecondaryKey, params.SecondaryDesc)
	listQuery := fmt.Sprintf(
		"SELECT id, level, module, ord, title, content_json FROM lessons%s ORDER BY %s LIMIT %d OFFSET %d",
		where, orderBy, pageSize, offset)

	var rows []lessonRow
	if len(params.Modules) > 0 {
		expanded, expandedArgs, err := sqlx.In(listQuery, append(append([]any{}, args...), params.Modules)...)
		if err != nil {
			return nil, 0, fmt.Errorf("expand module list: %w", err)
		}
		if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(expanded), expandedArgs...); err != nil {
			return nil, 0, fmt.Errorf("list lessons: %w", err)
		}
	} else {
		if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listQuery), args...); err != nil {
			return nil, 0, fmt.Errorf("list lessons: %w", err)
		}
	}

	lessons := make([]entity.Lesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, row.toEntity())
	}
	return lessons, total, nil
}

func (r *lessonRepository) CompletedModules(ctx context.Context, userID int64, level entity.Level) ([]string, error) {
	query := r.db.Rebind(`
		SELECT DISTINCT l.module
		FROM lessons l
		JOIN user_progress p ON p.lesson_id = l.id
		WHERE p.user_id = ? AND l.level = ? AND l.ord < ?
		ORDER BY l.module`)
	var modules []string
	if err := r.db.SelectContext(ctx, &modules, query, userID, string(level), entity.GamesBundleOrder); err != nil {
		return nil, fmt.Errorf("completed modules: %w", err)
	}
	return modules, nil
}

func (r *lessonRepository) GameBundles(ctx context.Context, level entity.Level, modules []string) ([]entity.LessonContent, error) {
	query := `SELECT content_json FROM lessons WHERE level = ? AND ord = ?`
	args := []any{string(level), entity.GamesBundleOrder}
	if len(modules) > 0 {
		query += ` AND module IN (?)`
		expanded, expandedArgs, err := sqlx.In(query, string(level), entity.GamesBundleOrder, modules)
		if err != nil {
			return nil, fmt.Errorf("expand module list: %w", err)
		}
		query = expanded
		args = expandedArgs
	}

	var payloads []types.LessonContentJSON
	if err := r.db.SelectContext(ctx, &payloads, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("game bundles: %w", err)
	}
	out := make([]entity.LessonContent, 0, len(payloads))
	for _, payload := range payloads {
		out = append(out, payload.Content())
	}
	return out, nil
}

func (r *lessonRepository) CompletedLessonContent(ctx context.Context, userID int64, level entity.Level) ([]entity.LessonContent, error) {
	query := r.db.Rebind(`
		SELECT l.content_json
		FROM lessons l
		JOIN user_progress p ON p.lesson_id = l.id
		WHERE p.user_id = ? AND l.level = ? AND l.ord < ?`)
	var payloads []types.LessonContentJSON
	if err := r.db.SelectContext(ctx, &payloads, query, userID, string(level), entity.GamesBundleOrder); err != nil {
		return nil, fmt.Errorf("completed lesson content: %w", err)
	}
	out := make([]entity.LessonContent, 0, len(payloads))
	for _, payload := range payloads {
		out = append(out, payload.Content())
	}
	return out, nil
}

func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}

// orderClause renders a two-key ORDER BY from whitelisted schema fields.
func orderClause(schema filterexpr.OrderSchema, primary string, primaryDesc bool, secondary string, secondaryDesc bool) string {
	render := func(key string, desc bool) string {
		field, ok := schema.Fields[key]
		if !ok {
			field = schema.Fields[schema.FallbackKey]
		}
		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		return field.Expr + " " + dir
	}
	return render(primary, primaryDesc) + ", " + render(secondary, secondaryDesc)
}

// insertReturningID works around lib/pq lacking LastInsertId support.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, args ...any) (int64, error) {
	if db.DriverName() == "postgres" {
		var id int64
		if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
