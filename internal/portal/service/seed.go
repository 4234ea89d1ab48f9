package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid seed file")

// SeedFile is the YAML document accepted by `spotter users import` and
// SEED_FILE.
type SeedFile struct {
	Organizations []SeedOrganization `yaml:"organizations"`
	Users         []SeedUser         `yaml:"users"`
}

type SeedOrganization struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type SeedUser struct {
	ID             string `yaml:"id"`
	Email          string `yaml:"email"`
	DisplayName    string `yaml:"display_name"`
	Role           string `yaml:"role"`
	OrganizationID string `yaml:"organization_id"`
}

type SeedResult struct {
	Organizations int
	Users         int
}

// ParseSeed decodes and validates a seed document. Unknown keys are errors.
func ParseSeed(r io.Reader) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return SeedFile{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if err := f.validate(); err != nil {
		return SeedFile{}, err
	}
	return f, nil
}

func (f SeedFile) validate() error {
	orgs := make(map[string]bool, len(f.Organizations))
	for i, o := range f.Organizations {
		if o.ID == "" || o.Name == "" || o.Slug == "" {
			return fmt.Errorf("%w: organization %d needs id, name and slug", ErrInvalidSeed, i)
		}
		orgs[o.ID] = true
	}

	for i, u := range f.Users {
		if _, err := uuid.Parse(u.ID); err != nil {
			return fmt.Errorf("%w: user %d: id %q is not a uuid", ErrInvalidSeed, i, u.ID)
		}
		if !strings.Contains(u.Email, "@") {
			return fmt.Errorf("%w: user %s: invalid email", ErrInvalidSeed, u.ID)
		}
		if !domain.ValidRole(u.Role) {
			return fmt.Errorf("%w: user %s: unknown role %q", ErrInvalidSeed, u.ID, u.Role)
		}
		if u.Role == domain.RoleAdmin && u.OrganizationID != "" {
			return fmt.Errorf("%w: user %s: admins do not belong to an organization", ErrInvalidSeed, u.ID)
		}
		if u.Role != domain.RoleAdmin && u.OrganizationID == "" {
			return fmt.Errorf("%w: user %s: organization_id is required", ErrInvalidSeed, u.ID)
		}
		if u.OrganizationID != "" && !orgs[u.OrganizationID] {
			return fmt.Errorf("%w: user %s: organization %q is not in the file", ErrInvalidSeed, u.ID, u.OrganizationID)
		}
	}
	return nil
}

type SeedService struct {
	Store store.Store
	Now   func() time.Time
}

// Import upserts everything in r inside one transaction. Re-importing the
// same file is a no-op apart from updated_at.
func (s *SeedService) Import(ctx context.Context, r io.Reader) (SeedResult, error) {
	f, err := ParseSeed(r)
	if err != nil {
		return SeedResult{}, err
	}

	now := clock(s.Now)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, o := range f.Organizations {
			if err := tx.Organizations().UpsertOrganization(ctx, domain.Organization{
				ID:        o.ID,
				Name:      o.Name,
				Slug:      o.Slug,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("failed to upsert organization %s: %w", o.ID, err)
			}
		}
		for _, u := range f.Users {
			if err := tx.Users().UpsertUser(ctx, domain.User{
				ID:             u.ID,
				Email:          u.Email,
				DisplayName:    u.DisplayName,
				Role:           u.Role,
				OrganizationID: u.OrganizationID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}); err != nil {
				return fmt.Errorf("failed to upsert user %s: %w", u.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	res := SeedResult{Organizations: len(f.Organizations), Users: len(f.Users)}
	slogx.FromContext(ctx).Info("seed imported", "organizations", res.Organizations, "users", res.Users)
	return res, nil
}
