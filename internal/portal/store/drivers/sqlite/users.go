package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UpsertUser(ctx context.Context, u domain.User) error {
	now := time.Now()
	created := u.CreatedAt
	if created.IsZero() {
		created = now
	}
	err := r.q.UpsertUser(ctx, gen.UpsertUserParams{
		ID:             u.ID,
		Email:          strings.ToLower(u.Email),
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		OrganizationID: toNullString(u.OrganizationID),
		CreatedAt:      toMillis(created),
		UpdatedAt:      toMillis(now),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateMFASecret(ctx context.Context, userID string, secret *string) error {
	n, err := r.q.UpdateUserMFASecret(ctx, gen.UpdateUserMFASecretParams{
		MfaSecret: toOptionalString(secret),
		UpdatedAt: toMillis(time.Now()),
		ID:        userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	rows, err := r.q.ListUsersByOrganization(ctx, toNullString(orgID))
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:             row.ID,
		Email:          row.Email,
		DisplayName:    row.DisplayName,
		Role:           row.Role,
		OrganizationID: fromNullString(row.OrganizationID),
		MFASecret:      fromNullStringPtr(row.MfaSecret),
		CreatedAt:      fromMillis(row.CreatedAt),
		UpdatedAt:      fromMillis(row.UpdatedAt),
	}
}
