package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
)

type organizationsRepo struct {
	q *gen.Queries
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row, err := r.q.GetOrganizationByID(ctx, id)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return domain.Organization{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		CreatedAt: fromMillis(row.CreatedAt),
		UpdatedAt: fromMillis(row.UpdatedAt),
	}, nil
}

func (r *organizationsRepo) UpsertOrganization(ctx context.Context, o domain.Organization) error {
	now := time.Now()
	created := o.CreatedAt
	if created.IsZero() {
		created = now
	}
	err := r.q.UpsertOrganization(ctx, gen.UpsertOrganizationParams{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: toMillis(created),
		UpdatedAt: toMillis(now),
	})
	return mapConstraint(err)
}
