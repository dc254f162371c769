package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type weaknessRow struct {
	ID         int64        `db:"id"`
	UserID     int64        `db:"user_id"`
	SkillArea  string       `db:"skill_area"`
	ErrorCount int32        `db:"error_count"`
	LastTested sql.NullTime `db:"last_tested"`
}

func (r weaknessRow) toEntity() entity.WeaknessRecord {
	record := entity.WeaknessRecord{
		ID:         r.ID,
		UserID:     r.UserID,
		SkillArea:  entity.SkillArea(r.SkillArea),
		ErrorCount: r.ErrorCount,
	}
	if r.LastTested.Valid {
		record.LastTested = r.LastTested.Time
	}
	return record
}

type weaknessRepository struct{ db *sqlx.DB }

// NewWeaknessRepository creates a weakness repository over an open database.
func NewWeaknessRepository(db *sqlx.DB) repository.WeaknessRepository {
	return &weaknessRepository{db: db}
}

func (r *weaknessRepository) Create(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO user_weaknesses (user_id, skill_area, error_count, last_tested) VALUES (?, ?, ?, ?)`,
		record.UserID, string(record.SkillArea), record.ErrorCount, record.LastTested)
	if err != nil {
		return nil, fmt.Errorf("create weakness: %w", err)
	}
	created := *record
	created.ID = id
	return &created, nil
}

func (r *weaknessRepository) Update(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE user_weaknesses SET error_count = ?, last_tested = ? WHERE id = ?`),
		record.ErrorCount, record.LastTested, record.ID)
	if err != nil {
		return nil, fmt.Errorf("update weakness: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, entity.ErrWeaknessNotFound
	}
	updated := *record
	return &updated, nil
}

func (r *weaknessRepository) FindBySkillArea(ctx context.Context, userID int64, skill entity.SkillArea) (*entity.WeaknessRecord, error) {
	var row weaknessRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(
		`SELECT id, user_id, skill_area, error_count, last_tested
		 FROM user_weaknesses WHERE user_id = ? AND skill_area = ?`),
		userID, string(skill))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find weakness: %w", err)
	}
	record := row.toEntity()
	return &record, nil
}

func (r *weaknessRepository) ListByUser(ctx context.Context, userID int64) ([]entity.WeaknessRecord, error) {
	var rows []weaknessRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT id, user_id, skill_area, error_count, last_tested
		 FROM user_weaknesses WHERE user_id = ? ORDER BY error_count DESC, id ASC`),
		userID)
	if err != nil {
		return nil, fmt.Errorf("list weaknesses: %w", err)
	}
	out := make([]entity.WeaknessRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
