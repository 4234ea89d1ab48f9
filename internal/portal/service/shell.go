package service

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed shells.yaml
var shellsYAML []byte

var ErrIncompleteRegistry = errors.New("shell registry is incomplete")

// DefaultShellRegistry parses the embedded registry.
func DefaultShellRegistry() (domain.ShellRegistry, error) {
	return ParseShellRegistry(shellsYAML)
}

// ParseShellRegistry decodes a registry and checks that it covers every
// portal type with a layout and theme, and nothing else.
func ParseShellRegistry(data []byte) (domain.ShellRegistry, error) {
	raw := map[string]domain.Shell{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode shell registry: %w", err)
	}

	reg := make(domain.ShellRegistry, len(raw))
	for name, shell := range raw {
		p, err := domain.ParsePortalType(name)
		if err != nil {
			return nil, err
		}
		reg[p] = shell
	}

	var missing []string
	for _, p := range domain.Portals() {
		s, ok := reg[p]
		if !ok || s.Layout == "" || s.Theme == "" {
			missing = append(missing, string(p))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteRegistry, strings.Join(missing, ", "))
	}
	return reg, nil
}

// PortalShell describes the configured portal and how to reach the others.
type PortalShell struct {
	Portal  domain.PortalType            `json:"portal"`
	Shell   domain.Shell                 `json:"shell"`
	Portals map[domain.PortalType]string `json:"portals"`
}

// ShellService answers for the portal this process was configured to serve.
// Nothing about a request changes the answer.
type ShellService struct {
	Portal   domain.PortalType
	Registry domain.ShellRegistry
	URLs     map[domain.PortalType]string
}

func (s *ShellService) Current() (PortalShell, error) {
	shell, err := domain.SelectShell(s.Registry, s.Portal)
	if err != nil {
		return PortalShell{}, err
	}
	urls := make(map[domain.PortalType]string, len(s.URLs))
	for p, u := range s.URLs {
		if u != "" {
			urls[p] = u
		}
	}
	return PortalShell{Portal: s.Portal, Shell: shell, Portals: urls}, nil
}
