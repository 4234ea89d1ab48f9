package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
organizations:
  - id: org-2
    name: Harbour Boxing
    slug: harbour-boxing
users:
  - id: 11111111-1111-4111-8111-111111111111
    email: coach@harbour.test
    display_name: Coach
    role: owner
    organization_id: org-2
  - id: 22222222-2222-4222-8222-222222222222
    email: ops@spotter.test
    role: admin
`

func TestSeedImport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &SeedService{Store: s, Now: newFakeClock().Now}

	res, err := svc.Import(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Equal(t, SeedResult{Organizations: 1, Users: 2}, res)

	u, err := s.Users().GetUserByID(ctx, "11111111-1111-4111-8111-111111111111")
	require.NoError(t, err)
	require.Equal(t, domain.RoleOwner, u.Role)
	require.Equal(t, "org-2", u.OrganizationID)

	_, err = svc.Import(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)

	members, err := s.Users().ListUsersByOrganization(ctx, "org-2")
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestParseSeedRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key": `users: [{id: 11111111-1111-4111-8111-111111111111, email: a@b.c, role: admin, password: x}]`,
		"bad uuid":    `users: [{id: u1, email: a@b.c, role: admin}]`,
		"bad role":    `users: [{id: 11111111-1111-4111-8111-111111111111, email: a@b.c, role: root}]`,
		"bad email":   `users: [{id: 11111111-1111-4111-8111-111111111111, email: nope, role: admin}]`,
		"no org":      `users: [{id: 11111111-1111-4111-8111-111111111111, email: a@b.c, role: member}]`,
		"admin org": `
organizations: [{id: o, name: O, slug: o}]
users: [{id: 11111111-1111-4111-8111-111111111111, email: a@b.c, role: admin, organization_id: o}]`,
		"missing org": `users: [{id: 11111111-1111-4111-8111-111111111111, email: a@b.c, role: member, organization_id: ghost}]`,
		"org fields":  `organizations: [{id: o, name: O}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidSeed)
		})
	}

	t.Run("empty document", func(t *testing.T) {
		f, err := ParseSeed(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, f.Users)
	})
}
