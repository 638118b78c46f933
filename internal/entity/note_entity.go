package entity

import "time"

// Note is identified by (SpaceSlug, Number). Number is assigned once at
// creation by the sequence allocator, never reused, never reassigned.
// Fields maps field identifiers to values conforming to the owning space's
// schema at write time; the schema is not retroactively enforced.
type Note struct {
	SpaceSlug  string
	Number     int64
	CreatedBy  string
	CreatedAt  time.Time
	EditedAt   *time.Time
	ActivityAt time.Time
	Fields     map[string]interface{}
}
