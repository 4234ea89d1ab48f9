package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store/drivers/sqlite/gen"
)

type oauthStatesRepo struct {
	q *gen.Queries
}

func (r *oauthStatesRepo) CreateOAuthState(ctx context.Context, s domain.OAuthState) error {
	err := r.q.CreateOAuthState(ctx, gen.CreateOAuthStateParams{
		StateHash: s.StateHash,
		UserID:    s.UserID,
		Provider:  s.Provider,
		Verifier:  s.Verifier,
		CreatedAt: toMillis(s.CreatedAt),
		ExpiresAt: toMillis(s.ExpiresAt),
	})
	return mapConstraint(err)
}

func (r *oauthStatesRepo) ConsumeOAuthState(ctx context.Context, stateHash string, now time.Time) (domain.OAuthState, error) {
	row, err := r.q.ConsumeOAuthState(ctx, gen.ConsumeOAuthStateParams{
		StateHash: stateHash,
		Now:       toMillis(now),
	})
	if err != nil {
		return domain.OAuthState{}, mapNotFound(err)
	}
	return domain.OAuthState{
		StateHash: row.StateHash,
		UserID:    row.UserID,
		Provider:  row.Provider,
		Verifier:  row.Verifier,
		CreatedAt: fromMillis(row.CreatedAt),
		ExpiresAt: fromMillis(row.ExpiresAt),
	}, nil
}

func (r *oauthStatesRepo) DeleteExpiredOAuthStates(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredOAuthStates(ctx, toMillis(now))
}
