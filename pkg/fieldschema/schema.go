package fieldschema

import (
	"encoding/json"
	"fmt"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/pkg/identifier"
)

// FieldDef is one field declaration inside a space schema.
type FieldDef struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Schema is the ordered field definition list of one space.
type Schema []FieldDef

// Parse decodes and validates a schema from its persisted JSON form.
func Parse(raw []byte) (Schema, error) {
	if len(raw) == 0 {
		return Schema{}, nil
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("malformed field schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks field identifiers and type tags. Field identifiers must
// be unique within one space.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, def := range s {
		if _, err := identifier.ValidateFieldID(def.ID); err != nil {
			return err
		}
		if seen[def.ID] {
			return apperror.NewConflict("field_id", def.ID)
		}
		seen[def.ID] = true
		if !def.Type.Known() {
			return apperror.NewInvalidIdentifier("field_type", string(def.Type), "unknown field type")
		}
	}
	return nil
}

// Marshal encodes the schema for the space's field_schema column.
func (s Schema) Marshal() ([]byte, error) {
	if s == nil {
		s = Schema{}
	}
	return json.Marshal(s)
}

// Field returns the definition for id, or false when the schema does not
// declare it.
func (s Schema) Field(id string) (FieldDef, bool) {
	for _, def := range s {
		if def.ID == id {
			return def, true
		}
	}
	return FieldDef{}, false
}

// FieldsOfType returns the definitions whose declared type is t. The rename
// cascade uses this to scope its payload scan by field type instead of
// blind string matching.
func (s Schema) FieldsOfType(t FieldType) []FieldDef {
	var out []FieldDef
	for _, def := range s {
		if def.Type == t {
			out = append(out, def)
		}
	}
	return out
}
