package fieldschema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
)

func testValidator(users map[string]bool, attachments map[int64]bool) *Validator {
	return &Validator{
		Users: func(ctx context.Context, username string) (bool, error) {
			return users[username], nil
		},
		Attachments: func(ctx context.Context, number int64) (bool, error) {
			return attachments[number], nil
		},
	}
}

func taskSchema() Schema {
	return Schema{
		{ID: "title", Name: "Title", Type: TypeText, Required: true},
		{ID: "priority", Name: "Priority", Type: TypeNumber},
		{ID: "done", Name: "Done", Type: TypeBoolean},
		{ID: "due", Name: "Due", Type: TypeDatetime},
		{ID: "assigned_to", Name: "Assigned To", Type: TypeUser},
		{ID: "thumbnail", Name: "Thumbnail", Type: TypeImage},
	}
}

func TestValidateAcceptsConformingPayload(t *testing.T) {
	v := testValidator(map[string]bool{"jane": true}, map[int64]bool{7: true})

	payload := map[string]interface{}{
		"title":       "ship release",
		"priority":    float64(2),
		"done":        false,
		"due":         "2026-09-01T12:00:00Z",
		"assigned_to": "Jane",
		"thumbnail":   float64(7),
	}

	got, err := v.Validate(context.Background(), taskSchema(), payload)
	require.NoError(t, err)
	assert.Equal(t, "ship release", got["title"])
	// usernames come back normalized
	assert.Equal(t, "jane", got["assigned_to"])
	assert.Equal(t, int64(7), got["thumbnail"])
}

func TestValidateCollectsAllErrors(t *testing.T) {
	v := testValidator(nil, nil)

	payload := map[string]interface{}{
		"priority":    "high",
		"done":        "yes",
		"mystery":     1,
		"assigned_to": "ghost",
	}

	_, err := v.Validate(context.Background(), taskSchema(), payload)
	require.Error(t, err)

	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)

	byField := make(map[string]string, len(ferr.Fields))
	for _, fe := range ferr.Fields {
		byField[fe.FieldID] = fe.Reason
	}
	// required title missing, two type mismatches, one unknown field,
	// one unresolvable user — all reported at once
	assert.Len(t, ferr.Fields, 5)
	assert.Contains(t, byField, "title")
	assert.Contains(t, byField, "priority")
	assert.Contains(t, byField, "done")
	assert.Contains(t, byField, "mystery")
	assert.Contains(t, byField["assigned_to"], "ghost")
}

func TestValidateUnknownUserNamesField(t *testing.T) {
	v := testValidator(map[string]bool{}, nil)

	_, err := v.Validate(context.Background(), Schema{
		{ID: "assigned_to", Type: TypeUser},
	}, map[string]interface{}{"assigned_to": "ghost"})

	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
	require.Len(t, ferr.Fields, 1)
	assert.Equal(t, "assigned_to", ferr.Fields[0].FieldID)
	assert.Contains(t, ferr.Fields[0].Reason, `"ghost"`)
}

func TestValidateUnknownAttachment(t *testing.T) {
	v := testValidator(nil, map[int64]bool{})

	_, err := v.Validate(context.Background(), Schema{
		{ID: "thumbnail", Type: TypeImage},
	}, map[string]interface{}{"thumbnail": float64(999)})

	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
	require.Len(t, ferr.Fields, 1)
	assert.Contains(t, ferr.Fields[0].Reason, "999")
}

func TestValidateDatetime(t *testing.T) {
	v := testValidator(nil, nil)
	schema := Schema{{ID: "due", Type: TypeDatetime}}

	got, err := v.Validate(context.Background(), schema, map[string]interface{}{
		"due": "2026-01-15T08:30:00+07:00",
	})
	require.NoError(t, err)
	// normalized to UTC
	assert.Equal(t, "2026-01-15T01:30:00Z", got["due"])

	_, err = v.Validate(context.Background(), schema, map[string]interface{}{
		"due": "15/01/2026",
	})
	assert.Error(t, err)
}

func TestValidateImageRejectsFractionalNumber(t *testing.T) {
	v := testValidator(nil, map[int64]bool{7: true})

	_, err := v.Validate(context.Background(), Schema{
		{ID: "thumbnail", Type: TypeImage},
	}, map[string]interface{}{"thumbnail": 7.5})

	var ferr *apperror.FieldValidationError
	require.ErrorAs(t, err, &ferr)
}

func TestValidateNilClearsOptionalField(t *testing.T) {
	v := testValidator(nil, nil)

	got, err := v.Validate(context.Background(), Schema{
		{ID: "priority", Type: TypeNumber},
	}, map[string]interface{}{"priority": nil})
	require.NoError(t, err)

	val, present := got["priority"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestValidateResolverErrorAborts(t *testing.T) {
	boom := errors.New("store unavailable")
	v := &Validator{
		Users: func(ctx context.Context, username string) (bool, error) {
			return false, boom
		},
		Attachments: func(ctx context.Context, number int64) (bool, error) {
			return false, nil
		},
	}

	_, err := v.Validate(context.Background(), Schema{
		{ID: "assigned_to", Type: TypeUser},
	}, map[string]interface{}{"assigned_to": "jane"})

	require.ErrorIs(t, err, boom)
	var ferr *apperror.FieldValidationError
	assert.False(t, errors.As(err, &ferr))
}
