package repository

import (
	"context"

	"github.com/atlaslingo/darlingo/internal/entity"
)

// WeaknessRepository persists the per-user error ledger. FindBySkillArea
// returns (nil, nil) when no record exists so the ledger can upsert.
type WeaknessRepository interface {
	Create(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error)
	Update(ctx context.Context, record *entity.WeaknessRecord) (*entity.WeaknessRecord, error)
	FindBySkillArea(ctx context.Context, userID int64, skill entity.SkillArea) (*entity.WeaknessRecord, error)

	// ListByUser returns the user's records ordered by error count
	// descending; storage order breaks ties.
	ListByUser(ctx context.Context, userID int64) ([]entity.WeaknessRecord, error)
}
