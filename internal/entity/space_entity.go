package entity

import (
	"time"

	"spacenotes-be/pkg/fieldschema"
)

// Space is identified by its slug. Fields is the user-defined schema that
// note payloads in this space are validated against at write time.
type Space struct {
	Slug        string
	Title       string
	Description string
	Fields      fieldschema.Schema
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// SpaceMember relates a space and a user. Removed with its space; blocks
// deletion of its user.
type SpaceMember struct {
	SpaceSlug string
	Username  string
	AddedAt   time.Time
}
