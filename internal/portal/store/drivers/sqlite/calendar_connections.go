package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
)

type calendarConnectionsRepo struct {
	q *gen.Queries
}

func (r *calendarConnectionsRepo) UpsertCalendarConnection(ctx context.Context, c domain.CalendarConnection) error {
	now := time.Now()
	created := c.CreatedAt
	if created.IsZero() {
		created = now
	}
	return r.q.UpsertCalendarConnection(ctx, gen.UpsertCalendarConnectionParams{
		UserID:            c.UserID,
		Provider:          c.Provider,
		RefreshToken:      c.RefreshToken,
		AccessTokenExpiry: toNullMillis(c.AccessTokenExpiry),
		Scopes:            strings.Join(c.Scopes, " "),
		CreatedAt:         toMillis(created),
		UpdatedAt:         toMillis(now),
	})
}

func (r *calendarConnectionsRepo) GetCalendarConnection(
	ctx context.Context,
	userID, provider string,
) (domain.CalendarConnection, error) {
	row, err := r.q.GetCalendarConnection(ctx, gen.GetCalendarConnectionParams{
		UserID:   userID,
		Provider: provider,
	})
	if err != nil {
		return domain.CalendarConnection{}, mapNotFound(err)
	}
	return domain.CalendarConnection{
		UserID:            row.UserID,
		Provider:          row.Provider,
		RefreshToken:      row.RefreshToken,
		AccessTokenExpiry: fromNullMillis(row.AccessTokenExpiry),
		Scopes:            strings.Fields(row.Scopes),
		CreatedAt:         fromMillis(row.CreatedAt),
		UpdatedAt:         fromMillis(row.UpdatedAt),
	}, nil
}

func (r *calendarConnectionsRepo) DeleteCalendarConnection(ctx context.Context, userID, provider string) error {
	return r.q.DeleteCalendarConnection(ctx, gen.DeleteCalendarConnectionParams{
		UserID:   userID,
		Provider: provider,
	})
}
