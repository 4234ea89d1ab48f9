package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
)

type calendarConnectionsRepo struct {
	q querier
}

func (r *calendarConnectionsRepo) UpsertCalendarConnection(ctx context.Context, c domain.CalendarConnection) error {
	now := time.Now().UTC()
	created := c.CreatedAt
	if created.IsZero() {
		created = now
	}
	scopes := c.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO calendar_connections (user_id, provider, refresh_token, access_token_expiry, scopes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			refresh_token       = EXCLUDED.refresh_token,
			access_token_expiry = EXCLUDED.access_token_expiry,
			scopes              = EXCLUDED.scopes,
			updated_at          = EXCLUDED.updated_at`,
		c.UserID, c.Provider, c.RefreshToken, utcPtr(c.AccessTokenExpiry), scopes, created, now,
	)
	return err
}

func (r *calendarConnectionsRepo) GetCalendarConnection(
	ctx context.Context,
	userID, provider string,
) (domain.CalendarConnection, error) {
	var c domain.CalendarConnection
	err := r.q.QueryRow(ctx, `
		SELECT user_id, provider, refresh_token, access_token_expiry, scopes, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2`,
		userID, provider,
	).Scan(&c.UserID, &c.Provider, &c.RefreshToken, &c.AccessTokenExpiry, &c.Scopes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.CalendarConnection{}, mapNotFound(err)
	}
	c.AccessTokenExpiry = utcPtr(c.AccessTokenExpiry)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *calendarConnectionsRepo) DeleteCalendarConnection(ctx context.Context, userID, provider string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM calendar_connections WHERE user_id = $1 AND provider = $2`, userID, provider)
	return err
}
