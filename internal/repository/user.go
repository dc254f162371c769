package repository

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// UserRepository persists learner accounts. FindByEmail returns (nil, nil)
// when no account matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
