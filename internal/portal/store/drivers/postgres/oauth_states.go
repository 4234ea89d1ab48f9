package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
)

type oauthStatesRepo struct {
	q querier
}

func (r *oauthStatesRepo) CreateOAuthState(ctx context.Context, s domain.OAuthState) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO oauth_states (state_hash, user_id, provider, verifier, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.StateHash, s.UserID, s.Provider, s.Verifier, s.CreatedAt.UTC(), s.ExpiresAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *oauthStatesRepo) ConsumeOAuthState(ctx context.Context, stateHash string, now time.Time) (domain.OAuthState, error) {
	var s domain.OAuthState
	err := r.q.QueryRow(ctx, `
		DELETE FROM oauth_states
		WHERE state_hash = $1 AND expires_at > $2
		RETURNING state_hash, user_id, provider, verifier, created_at, expires_at`,
		stateHash, now.UTC(),
	).Scan(&s.StateHash, &s.UserID, &s.Provider, &s.Verifier, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return domain.OAuthState{}, mapNotFound(err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return s, nil
}

func (r *oauthStatesRepo) DeleteExpiredOAuthStates(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM oauth_states WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
