package dto

import "time"

type CreateAttachmentRequest struct {
	NoteNumber *int64 `json:"note_number"`
	Filename   string `json:"filename" validate:"required"`
	Size       int64  `json:"size" validate:"gte=0"`
	MimeType   string `json:"mime_type" validate:"required"`
}

type CreateAttachmentResponse struct {
	SpaceSlug string `json:"space_slug"`
	Number    int64  `json:"number"`
}

type AttachmentResponse struct {
	SpaceSlug  string    `json:"space_slug"`
	Number     int64     `json:"number"`
	NoteNumber *int64    `json:"note_number,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	CreatedAt  time.Time `json:"created_at"`
}
