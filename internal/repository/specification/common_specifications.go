package specification

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ByUsername filters by the username primary/foreign key column.
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// BySlug filters spaces by their slug primary key.
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// BySpace filters composite-keyed rows (notes, attachments, members) by the
// space component of their key.
type BySpace struct {
	Slug string
}

func (s BySpace) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("space_slug = ?", s.Slug)
}

// ByNumber filters composite-keyed rows by the sequence component.
type ByNumber struct {
	Number int64
}

func (s ByNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("number = ?", s.Number)
}

// ExpiredBefore matches sessions whose expiry has passed.
type ExpiredBefore struct {
	At time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at < ?", s.At)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// LockForUpdate takes a row lock for the remainder of the transaction.
// Only emitted on dialects that support it; sqlite serializes writers on
// its own and rejects the FOR UPDATE syntax.
type LockForUpdate struct{}

func (s LockForUpdate) Apply(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
