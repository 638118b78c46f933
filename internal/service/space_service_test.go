package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/internal/dto"
)

func TestCreateSpace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.spaces.Create(ctx, &dto.CreateSpaceRequest{
		Slug:  "Team-Alpha",
		Title: "Team Alpha",
		Fields: []dto.FieldDefRequest{
			{ID: "status", Name: "Status", Type: "text", Required: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "team-alpha", res.Slug)

	space, err := env.spaces.Get(ctx, "team-alpha")
	require.NoError(t, err)
	require.Len(t, space.Fields, 1)
	assert.Equal(t, "status", space.Fields[0].ID)
	assert.True(t, space.Fields[0].Required)

	_, err = env.spaces.Create(ctx, &dto.CreateSpaceRequest{Slug: "team-alpha", Title: "dup"})
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateSpaceRejectsBadSchema(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.spaces.Create(ctx, &dto.CreateSpaceRequest{
		Slug:  "work",
		Title: "Work",
		Fields: []dto.FieldDefRequest{
			{ID: "status", Name: "A", Type: "text"},
			{ID: "status", Name: "B", Type: "number"},
		},
	})
	assert.True(t, apperror.IsConflict(err))

	_, err = env.spaces.Create(ctx, &dto.CreateSpaceRequest{
		Slug:  "work",
		Title: "Work",
		Fields: []dto.FieldDefRequest{
			{ID: "loc", Name: "Loc", Type: "geopoint"},
		},
	})
	var invalid *apperror.InvalidIdentifierError
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdateSchemaTypeChangeBlockedByNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", []dto.FieldDefRequest{
		{ID: "priority", Name: "Priority", Type: "number"},
	})

	// No notes yet: the type may still change freely.
	err := env.spaces.UpdateSchema(ctx, "work", &dto.UpdateSchemaRequest{
		Fields: []dto.FieldDefRequest{
			{ID: "priority", Name: "Priority", Type: "text"},
		},
	})
	require.NoError(t, err)

	env.mustCreateNote(t, "john", "work", map[string]interface{}{"priority": "high"})

	// With notes present a type change is refused...
	err = env.spaces.UpdateSchema(ctx, "work", &dto.UpdateSchemaRequest{
		Fields: []dto.FieldDefRequest{
			{ID: "priority", Name: "Priority", Type: "boolean"},
		},
	})
	assert.True(t, apperror.IsConflict(err))

	// ...but adding a field is fine.
	err = env.spaces.UpdateSchema(ctx, "work", &dto.UpdateSchemaRequest{
		Fields: []dto.FieldDefRequest{
			{ID: "priority", Name: "Priority", Type: "text"},
			{ID: "done", Name: "Done", Type: "boolean"},
		},
	})
	require.NoError(t, err)
}

func TestDeleteSpaceCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)
	require.NoError(t, env.spaces.AddMember(ctx, "work", "john"))
	number := env.mustCreateNote(t, "john", "work", nil)
	_, err := env.attachments.Create(ctx, "john", "work", &dto.CreateAttachmentRequest{
		Filename: "scan.png",
		Size:     64,
		MimeType: "image/png",
	})
	require.NoError(t, err)

	require.NoError(t, env.spaces.Delete(ctx, "work"))

	_, err = env.spaces.Get(ctx, "work")
	assert.True(t, apperror.IsNotFound(err))
	_, err = env.notes.Get(ctx, "work", number)
	assert.True(t, apperror.IsNotFound(err))

	// The user is untouched and free to go now.
	require.NoError(t, env.users.Delete(ctx, "john"))

	// Recreating the slug starts numbering from scratch.
	env.mustCreateUser(t, "jane")
	env.mustCreateSpace(t, "work", nil)
	assert.Equal(t, int64(1), env.mustCreateNote(t, "jane", "work", nil))
}

func TestMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "john")
	env.mustCreateSpace(t, "work", nil)

	require.NoError(t, env.spaces.AddMember(ctx, "work", "john"))

	err := env.spaces.AddMember(ctx, "work", "john")
	assert.True(t, apperror.IsConflict(err))

	err = env.spaces.AddMember(ctx, "work", "ghost")
	assert.True(t, apperror.IsNotFound(err))
	err = env.spaces.AddMember(ctx, "nowhere", "john")
	assert.True(t, apperror.IsNotFound(err))

	members, err := env.spaces.GetMembers(ctx, "work")
	require.NoError(t, err)
	require.Len(t, members, 1)

	require.NoError(t, env.spaces.RemoveMember(ctx, "work", "john"))
	err = env.spaces.RemoveMember(ctx, "work", "john")
	assert.True(t, apperror.IsNotFound(err))
}
