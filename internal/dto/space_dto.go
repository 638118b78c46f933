package dto

import "time"

// FieldDefRequest mirrors one schema field declaration as accepted over
// the API; type tags and identifiers are validated by pkg/fieldschema.
type FieldDefRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Required bool   `json:"required"`
}

type CreateSpaceRequest struct {
	Slug        string            `json:"slug" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Fields      []FieldDefRequest `json:"fields"`
}

type CreateSpaceResponse struct {
	Slug string `json:"slug"`
}

type RenameSpaceRequest struct {
	NewSlug string `json:"new_slug" validate:"required"`
}

type RenameSpaceResponse struct {
	Slug string `json:"slug"`
}

type UpdateSchemaRequest struct {
	Fields []FieldDefRequest `json:"fields" validate:"required"`
}

type SpaceResponse struct {
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Fields      []FieldDefRequest `json:"fields"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type AddMemberRequest struct {
	Username string `json:"username" validate:"required"`
}

type MemberResponse struct {
	Username string    `json:"username"`
	AddedAt  time.Time `json:"added_at"`
}
