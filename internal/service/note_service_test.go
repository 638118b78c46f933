package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
)

func TestNoteNumbersAreSequentialPerSpace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)
	env.mustCreateSpace(t, "personal", nil)

	for want := int64(1); want <= 3; want++ {
		got := env.mustCreateNote(t, "john", "work", nil)
		assert.Equal(t, want, got)
	}

	// Each space draws from its own counter.
	assert.Equal(t, int64(1), env.mustCreateNote(t, "john", "personal", nil))
	assert.Equal(t, int64(4), env.mustCreateNote(t, "john", "work", nil))

	notes, err := env.notes.GetAll(ctx, "work")
	require.NoError(t, err)
	require.Len(t, notes, 4)
}

func TestNoteNumbersNeverReused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)

	env.mustCreateNote(t, "john", "work", nil)
	n2 := env.mustCreateNote(t, "john", "work", nil)

	require.NoError(t, env.notes.Delete(ctx, "work", n2))

	// The freed number stays burned.
	assert.Equal(t, int64(3), env.mustCreateNote(t, "john", "work", nil))
}

func TestNoteAndAttachmentCountersAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)

	assert.Equal(t, int64(1), env.mustCreateNote(t, "john", "work", nil))
	assert.Equal(t, int64(2), env.mustCreateNote(t, "john", "work", nil))

	att, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "scan.png",
		Size:     512,
		MimeType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), att.Number)
}

func TestCreateNoteValidatesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "title", Name: "Title", Type: "text", Required: true},
		{ID: "assigned_to", Name: "Assigned To", Type: "user"},
	})

	// Reference to a user that does not exist is rejected, naming the field.
	_, err := env.notes.Create(ctx, "john", "work", &dto.CreateNoteRequest{
		Fields: map[string]interface{}{
			"title":       "triage",
			"assigned_to": "ghost",
		},
	})
	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
	require.Len(t, ferr.Fields, 1)
	assert.Equal(t, "assigned_to", ferr.Fields[0].FieldID)

	// Same payload with a real user passes, stored normalized.
	env.mustCreateUser(t, "jane")
	number := env.mustCreateNote(t, "john", "work", map[string]interface{}{
		"title":       "triage",
		"assigned_to": "Jane",
	})
	note, err := env.notes.Get(ctx, "work", number)
	require.NoError(t, err)
	assert.Equal(t, "jane", note.Fields["assigned_to"])
}

func TestCreateNoteUnknownSpace(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateUser(t, "john")

	_, err := env.notes.Create(context.Background(), "john", "nowhere", &dto.CreateNoteRequest{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateNoteFieldsMergesAndRevalidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "title", Name: "Title", Type: "text", Required: true},
		{ID: "priority", Name: "Priority", Type: "number"},
	})

	number := env.mustCreateNote(t, "john", "work", map[string]interface{}{
		"title":    "ship it",
		"priority": float64(1),
	})

	updated, err := env.notes.UpdateFields(ctx, "work", number, &dto.UpdateNoteFieldsRequest{
		Fields: map[string]interface{}{"priority": float64(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, "ship it", updated.Fields["title"])
	assert.Equal(t, float64(3), updated.Fields["priority"])
	assert.NotNil(t, updated.EditedAt)

	// Clearing the required field fails the merged payload.
	_, err = env.notes.UpdateFields(ctx, "work", number, &dto.UpdateNoteFieldsRequest{
		Fields: map[string]interface{}{"title": nil},
	})
	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
}

func TestDeleteNoteDetachesAttachments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)

	number := env.mustCreateNote(t, "john", "work", nil)
	att, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		NoteNumber: &number,
		Filename:   "scan.png",
		Size:       512,
		MimeType:   "image/png",
	})
	require.NoError(t, err)

	require.NoError(t, env.notes.Delete(ctx, "work", number))

	// The attachment outlives the note, with the association cleared.
	got, err := env.attachments.Get(ctx, "work", att.Number)
	require.NoError(t, err)
	assert.Nil(t, got.NoteNumber)
}
