package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
)

func TestRenameUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateUser(t, "alice")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "title", Name: "Title", Type: "text"},
		{ID: "assigned_to", Name: "Assigned To", Type: "user"},
	})
	require.NoError(t, env.spaces.AddMember(ctx, "work", "john"))

	// One note assigned to john, one merely mentioning the string "john"
	// in a text field, one assigned to someone else.
	assigned := env.mustCreateNote(t, "alice", "work", map[string]interface{}{
		"title":       "review budget",
		"assigned_to": "john",
	})
	mention := env.mustCreateNote(t, "alice", "work", map[string]interface{}{
		"title": "john",
	})
	other := env.mustCreateNote(t, "john", "work", map[string]interface{}{
		"assigned_to": "alice",
	})

	session, err := env.auth.CreateSession(ctx, "john")
	require.NoError(t, err)

	got, err := env.renames.RenameUser(ctx, "john", "jane")
	require.NoError(t, err)
	assert.Equal(t, "jane", got)

	// Old identity is gone, new one answers.
	_, err = env.users.Get(ctx, "john")
	assert.True(t, apperror.IsNotFound(err))
	_, err = env.users.Get(ctx, "jane")
	require.NoError(t, err)

	// User-typed field rewritten.
	note, err := env.notes.Get(ctx, "work", assigned)
	require.NoError(t, err)
	assert.Equal(t, "jane", note.Fields["assigned_to"])

	// Text field with the same string untouched.
	note, err = env.notes.Get(ctx, "work", mention)
	require.NoError(t, err)
	assert.Equal(t, "john", note.Fields["title"])

	// Structural creator reference follows the rename.
	note, err = env.notes.Get(ctx, "work", other)
	require.NoError(t, err)
	assert.Equal(t, "jane", note.CreatedBy)
	assert.Equal(t, "alice", note.Fields["assigned_to"])

	// Membership follows.
	members, err := env.spaces.GetMembers(ctx, "work")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "jane", members[0].Username)

	// The session survives under the new owner.
	username, err := env.auth.ValidateSession(ctx, session.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "jane", username)
}

func TestRenameUserTargetTaken(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateUser(t, "john")
	env.mustCreateUser(t, "jane")

	_, err := env.renames.RenameUser(context.Background(), "john", "jane")
	assert.True(t, apperror.IsConflict(err))

	// Nothing changed.
	_, err = env.users.Get(context.Background(), "john")
	assert.NoError(t, err)
}

func TestRenameUserUnknown(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.renames.RenameUser(context.Background(), "nobody", "somebody")
	assert.True(t, apperror.IsNotFound(err))
}

func TestRenameUserInvalidTarget(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateUser(t, "john")

	_, err := env.renames.RenameUser(context.Background(), "john", "bad name")
	var invalid *apperror.InvalidIdentifierError
	assert.ErrorAs(t, err, &invalid)
}

func TestRenameSpaceCascadesAndPreservesNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)
	require.NoError(t, env.spaces.AddMember(ctx, "work", "john"))

	n1 := env.mustCreateNote(t, "john", "work", nil)
	n2 := env.mustCreateNote(t, "john", "work", nil)
	att, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "scan.png",
		Size:     64,
		MimeType: "image/png",
	})
	require.NoError(t, err)

	got, err := env.renames.RenameSpace(ctx, "work", "projects")
	require.NoError(t, err)
	assert.Equal(t, "projects", got)

	_, err = env.spaces.Get(ctx, "work")
	assert.True(t, apperror.IsNotFound(err))

	// Notes keep their numbers under the new slug.
	note, err := env.notes.Get(ctx, "projects", n1)
	require.NoError(t, err)
	assert.Equal(t, n1, note.Number)
	_, err = env.notes.Get(ctx, "projects", n2)
	require.NoError(t, err)

	_, err = env.attachments.Get(ctx, "projects", att.Number)
	require.NoError(t, err)

	members, err := env.spaces.GetMembers(ctx, "projects")
	require.NoError(t, err)
	require.Len(t, members, 1)

	// The allocator moved with the space: numbering continues, no reset.
	assert.Equal(t, int64(3), env.mustCreateNote(t, "john", "projects", nil))
}

func TestRenameSpaceTargetTaken(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateSpace(t, "work", nil)
	env.mustCreateSpace(t, "projects", nil)

	_, err := env.renames.RenameSpace(context.Background(), "work", "projects")
	assert.True(t, apperror.IsConflict(err))
}

func TestRenameSpaceToItsOwnSlug(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateSpace(t, "work", nil)

	// The slug is its own target: taken by the row being renamed.
	_, err := env.renames.RenameSpace(context.Background(), "work", "work")
	assert.True(t, apperror.IsConflict(err))
}
