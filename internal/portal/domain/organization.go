package domain

import "time"

// Organization is a tenant (a gym).
type Organization struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
