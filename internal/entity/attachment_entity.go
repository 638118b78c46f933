package entity

import "time"

// Attachment metadata, identified by (SpaceSlug, Number). Numbers come
// from a sequence independent from note numbers. NoteNumber is a loose
// structural association and may drift from image-typed note fields;
// the two are maintained independently.
type Attachment struct {
	SpaceSlug  string
	Number     int64
	NoteNumber *int64
	UploadedBy string
	Filename   string
	Size       int64
	MimeType   string
	CreatedAt  time.Time
}
