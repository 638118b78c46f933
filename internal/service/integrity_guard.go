package service

import (
	"context"
	"fmt"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/repository/specification"
	"spacenotes-be/internal/repository/unitofwork"
	"spacenotes-be/pkg/fieldschema"
)

// IntegrityGuard enforces the restrict side of the delete policy. It runs
// inside the deleting transaction so a reference cannot appear between the
// check and the delete.
//
// Policy: users are blocked by memberships, authored notes, uploaded
// attachments and live user-typed field references — deletion must never
// silently erase authorship or leave a dangling embedded reference.
// Attachments are blocked by image-typed field references in their own
// space. Spaces and notes cascade instead.
type IntegrityGuard struct{}

func NewIntegrityGuard() *IntegrityGuard {
	return &IntegrityGuard{}
}

func (g *IntegrityGuard) CanDeleteUser(ctx context.Context, uow unitofwork.UnitOfWork, username string) error {
	memberships, err := uow.SpaceMemberRepository().Count(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return err
	}
	if memberships > 0 {
		return apperror.NewRestricted("user", username, "space_membership", memberships)
	}

	authored, err := uow.NoteRepository().Count(ctx, specification.Filter("created_by", username))
	if err != nil {
		return err
	}
	if authored > 0 {
		return apperror.NewRestricted("user", username, "note", authored)
	}

	uploaded, err := uow.AttachmentRepository().Count(ctx, specification.Filter("uploaded_by", username))
	if err != nil {
		return err
	}
	if uploaded > 0 {
		return apperror.NewRestricted("user", username, "attachment", uploaded)
	}

	// Embedded references live inside schemaless payloads; scan per space,
	// scoped to user-typed fields only.
	spaces, err := uow.SpaceRepository().FindAll(ctx)
	if err != nil {
		return err
	}
	var referenced int64
	for _, space := range spaces {
		userFields := space.Fields.FieldsOfType(fieldschema.TypeUser)
		if len(userFields) == 0 {
			continue
		}
		notes, err := uow.NoteRepository().FindAll(ctx, specification.BySpace{Slug: space.Slug})
		if err != nil {
			return err
		}
		for _, note := range notes {
			for _, def := range userFields {
				if v, ok := note.Fields[def.ID]; ok && stringValueEquals(v, username) {
					referenced++
				}
			}
		}
	}
	if referenced > 0 {
		return apperror.NewRestricted("user", username, "note_field", referenced)
	}
	return nil
}

func (g *IntegrityGuard) CanDeleteAttachment(ctx context.Context, uow unitofwork.UnitOfWork, spaceSlug string, number int64) error {
	space, err := uow.SpaceRepository().FindOne(ctx, specification.BySlug{Slug: spaceSlug})
	if err != nil {
		return err
	}
	if space == nil {
		return apperror.NewNotFound("space", spaceSlug)
	}

	imageFields := space.Fields.FieldsOfType(fieldschema.TypeImage)
	if len(imageFields) == 0 {
		return nil
	}
	notes, err := uow.NoteRepository().FindAll(ctx, specification.BySpace{Slug: spaceSlug})
	if err != nil {
		return err
	}
	var referenced int64
	for _, note := range notes {
		for _, def := range imageFields {
			if v, ok := note.Fields[def.ID]; ok && numberValueEquals(v, number) {
				referenced++
			}
		}
	}
	if referenced > 0 {
		return apperror.NewRestricted("attachment", fmt.Sprintf("%s/%d", spaceSlug, number), "note_field", referenced)
	}
	return nil
}

// stringValueEquals compares a payload value against a string reference.
func stringValueEquals(v interface{}, want string) bool {
	s, ok := v.(string)
	return ok && s == want
}

// numberValueEquals compares a payload value against a sequence number.
// JSON round-trips numbers as float64.
func numberValueEquals(v interface{}, want int64) bool {
	switch n := v.(type) {
	case float64:
		return int64(n) == want && n == float64(want)
	case int64:
		return n == want
	case int:
		return int64(n) == want
	default:
		return false
	}
}
