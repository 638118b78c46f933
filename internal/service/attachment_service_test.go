package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
)

func TestCreateAttachmentRequiresExistingNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)

	missing := int64(42)
	_, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		NoteNumber: &missing,
		Filename:   "scan.png",
		Size:       512,
		MimeType:   "image/png",
	})
	assert.True(t, apperror.IsNotFound(err))

	// Free-standing attachments need no note.
	res, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "scan.png",
		Size:     512,
		MimeType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Number)
}

func TestDeleteAttachmentRestrictedByImageReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "thumbnail", Name: "Thumbnail", Type: "image"},
	})

	att, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "cover.png",
		Size:     2048,
		MimeType: "image/png",
	})
	require.NoError(t, err)

	number := env.mustCreateNote(t, "john", "work", map[string]interface{}{
		"thumbnail": float64(att.Number),
	})

	err = env.attachments.Delete(ctx, "work", att.Number)
	var restricted *apperror.RestrictedError
	require.ErrorAs(t, err, &restricted)
	assert.Equal(t, "note_field", restricted.ReferencingKind)

	// Clear the reference; the delete now succeeds.
	_, err = env.notes.UpdateFields(ctx, "work", number, &dto.UpdateNoteFieldsRequest{
		Fields: map[string]interface{}{"thumbnail": nil},
	})
	require.NoError(t, err)
	require.NoError(t, env.attachments.Delete(ctx, "work", att.Number))

	_, err = env.attachments.Get(ctx, "work", att.Number)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateNoteRejectsUnknownImageReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "thumbnail", Name: "Thumbnail", Type: "image"},
	})

	_, err := env.notes.Create(ctx, "john", "work", &dto.CreateNoteRequest{
		Fields: map[string]interface{}{"thumbnail": float64(999)},
	})
	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
	require.Len(t, ferr.Fields, 1)
	assert.Equal(t, "thumbnail", ferr.Fields[0].FieldID)

	// Upload attachment 1, then the reference resolves.
	att, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "cover.png",
		Size:     128,
		MimeType: "image/png",
	})
	require.NoError(t, err)

	env.mustCreateNote(t, "john", "work", map[string]interface{}{
		"thumbnail": float64(att.Number),
	})
}

func TestImageReferencesAreSpaceScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "thumbnail", Name: "Thumbnail", Type: "image"},
	})
	env.mustCreateSpace(t, "personal", nil)

	// Attachment lives in "personal"; "work" cannot reference it.
	att, err := env.attachments.Create(ctx, "john", "personal", &dto.CreateAttachmentRequest{
		Filename: "photo.jpg",
		Size:     64,
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)

	_, err = env.notes.Create(ctx, "john", "work", &dto.CreateNoteRequest{
		Fields: map[string]interface{}{"thumbnail": float64(att.Number)},
	})
	var ferr *apperror.FieldValidationError
	assert.ErrorAs(t, err, &ferr)
}
