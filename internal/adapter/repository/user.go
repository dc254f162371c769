package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/atlaslingo/darlingo/internal/entity"
	"github.com/atlaslingo/darlingo/internal/repository"
)

type userRow struct {
	ID           int64        `db:"id"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	DisplayName  string       `db:"display_name"`
	Level        string       `db:"level"`
	XP           int64        `db:"xp"`
	Streak       int32        `db:"streak"`
	LastActive   sql.NullTime `db:"last_active"`
	CreatedAt    sql.NullTime `db:"created_at"`
}

func (r userRow) toEntity() entity.User {
	user := entity.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		DisplayName:  r.DisplayName,
		Level:        entity.Level(r.Level),
		XP:           r.XP,
		Streak:       r.Streak,
	}
	if r.LastActive.Valid {
		user.LastActive = r.LastActive.Time
	}
	if r.CreatedAt.Valid {
		user.CreatedAt = r.CreatedAt.Time
	}
	return user
}

const userColumns = "id, email, password_hash, display_name, level, xp, streak, last_active, created_at"

type userRepository struct{ db *sqlx.DB }

// NewUserRepository creates a user repository over an open database.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	id, err := insertReturningID(ctx, r.db,
		`INSERT INTO users (email, password_hash, display_name, level, xp, streak, last_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.DisplayName, string(user.Level),
		user.XP, user.Streak, nullTime(user.LastActive), user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	created := *user
	created.ID = id
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`UPDATE users SET email = ?, password_hash = ?, display_name = ?, level = ?,
		 xp = ?, streak = ?, last_active = ? WHERE id = ?`),
		user.Email, user.PasswordHash, user.DisplayName, string(user.Level),
		user.XP, user.Streak, nullTime(user.LastActive), user.ID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, entity.ErrUserNotFound
	}
	updated := *user
	return &updated, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	user := row.toEntity()
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`),
		strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	user := row.toEntity()
	return &user, nil
}

func nullTime(t interface{ IsZero() bool }) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintUnique)
	}
	return false
}
