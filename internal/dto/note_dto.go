package dto

import "time"

type CreateNoteRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

type CreateNoteResponse struct {
	SpaceSlug string `json:"space_slug"`
	Number    int64  `json:"number"`
}

type UpdateNoteFieldsRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

type NoteResponse struct {
	SpaceSlug  string                 `json:"space_slug"`
	Number     int64                  `json:"number"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	EditedAt   *time.Time             `json:"edited_at,omitempty"`
	ActivityAt time.Time              `json:"activity_at"`
	Fields     map[string]interface{} `json:"fields"`
}
