package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, display_name, role, organization_id, mfa_secret, created_at, updated_at`

type usersRepo struct {
	q querier
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u     domain.User
		orgID *string
	)
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &orgID, &u.MFASecret, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.OrganizationID = derefString(orgID)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
	return u, mapNotFound(err)
}

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	created := u.CreatedAt
	if created.IsZero() {
		created = now
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, email, display_name, role, organization_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email           = EXCLUDED.email,
			display_name    = EXCLUDED.display_name,
			role            = EXCLUDED.role,
			organization_id = EXCLUDED.organization_id,
			updated_at      = EXCLUDED.updated_at`,
		u.ID, strings.ToLower(u.Email), u.DisplayName, u.Role, nullIfEmpty(u.OrganizationID), created, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID string, secret *string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET mfa_secret = $1, updated_at = $2 WHERE id = $3`,
		secret, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE organization_id = $1 ORDER BY email`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
