package fieldschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacenotes-be/internal/apperror"
)

func TestParse(t *testing.T) {
	raw := []byte(`[
		{"id":"status","name":"Status","type":"text","required":true},
		{"id":"assigned_to","name":"Assigned To","type":"user"},
		{"id":"thumbnail","name":"Thumbnail","type":"image"}
	]`)

	schema, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, schema, 3)

	def, ok := schema.Field("assigned_to")
	require.True(t, ok)
	assert.Equal(t, TypeUser, def.Type)
	assert.False(t, def.Required)

	_, ok = schema.Field("missing")
	assert.False(t, ok)
}

func TestParseEmpty(t *testing.T) {
	schema, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, schema)

	schema, err = Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, schema)
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	schema := Schema{
		{ID: "status", Name: "Status", Type: TypeText},
		{ID: "status", Name: "Other", Type: TypeNumber},
	}
	err := schema.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestValidateRejectsUnknownType(t *testing.T) {
	schema := Schema{{ID: "f", Name: "F", Type: FieldType("geo")}}
	err := schema.Validate()
	require.Error(t, err)

	var invalid *apperror.InvalidIdentifierError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "field_type", invalid.Kind)
}

func TestValidateRejectsBadFieldID(t *testing.T) {
	schema := Schema{{ID: "With-Hyphen", Name: "X", Type: TypeText}}
	assert.Error(t, schema.Validate())
}

func TestFieldsOfType(t *testing.T) {
	schema := Schema{
		{ID: "owner", Type: TypeUser},
		{ID: "reviewer", Type: TypeUser},
		{ID: "title", Type: TypeText},
		{ID: "cover", Type: TypeImage},
	}

	users := schema.FieldsOfType(TypeUser)
	require.Len(t, users, 2)
	assert.Equal(t, "owner", users[0].ID)
	assert.Equal(t, "reviewer", users[1].ID)

	assert.Len(t, schema.FieldsOfType(TypeImage), 1)
	assert.Empty(t, schema.FieldsOfType(TypeBoolean))
}

func TestMarshalRoundTrip(t *testing.T) {
	schema := Schema{{ID: "status", Name: "Status", Type: TypeText, Required: true}}
	raw, err := schema.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, schema, parsed)
}

func TestIsReference(t *testing.T) {
	assert.True(t, TypeUser.IsReference())
	assert.True(t, TypeImage.IsReference())
	assert.False(t, TypeText.IsReference())
	assert.False(t, TypeDatetime.IsReference())
}
