package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
)

type organizationsRepo struct {
	q querier
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	var o domain.Organization
	err := r.q.QueryRow(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM organizations WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}

func (r *organizationsRepo) UpsertOrganization(ctx context.Context, o domain.Organization) error {
	now := time.Now().UTC()
	created := o.CreatedAt
	if created.IsZero() {
		created = now
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO organizations (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			slug       = EXCLUDED.slug,
			updated_at = EXCLUDED.updated_at`,
		o.ID, o.Name, o.Slug, created, now,
	)
	return mapConstraint(err)
}
