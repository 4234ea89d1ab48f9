package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PortalType identifies the audience a deployment serves.
type PortalType string

const (
	PortalOwner   PortalType = "owner"
	PortalMember  PortalType = "member"
	PortalAdmin   PortalType = "admin"
	PortalBooking PortalType = "booking"
)

var ErrUnknownPortal = errors.New("domain: unknown portal")

// Portals lists every portal type in display order.
func Portals() []PortalType {
	return []PortalType{PortalOwner, PortalMember, PortalAdmin, PortalBooking}
}

// ParsePortalType accepts a portal name case-insensitively.
func ParsePortalType(s string) (PortalType, error) {
	p := PortalType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Portals() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPortal, s)
}

// Shell is the chrome a portal renders inside.
type Shell struct {
	Layout string `yaml:"layout" json:"layout"`
	Theme  string `yaml:"theme" json:"theme"`
	Chrome string `yaml:"chrome" json:"chrome"`
	Title  string `yaml:"title" json:"title"`
}

// ShellRegistry maps portals to their shell.
type ShellRegistry map[PortalType]Shell

// SelectShell returns the shell for p. It depends on nothing but its inputs.
func SelectShell(reg ShellRegistry, p PortalType) (Shell, error) {
	s, ok := reg[p]
	if !ok {
		return Shell{}, fmt.Errorf("%w: no shell for %q", ErrUnknownPortal, p)
	}
	return s, nil
}
