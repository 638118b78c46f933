// Package fieldschema implements the per-space user-defined field schemas
// and the schema-aware payload validator. The store never constrains a
// field payload; this package is the single enforcement point for type
// conformance and embedded entity references.
package fieldschema

// FieldType tags the declared type of one field in a space schema.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeDatetime FieldType = "datetime"

	// Reference types: values name another entity and are validated
	// against the live store at write time.
	TypeUser  FieldType = "user"  // value is a username
	TypeImage FieldType = "image" // value is an attachment number in the same space
)

var knownTypes = map[FieldType]bool{
	TypeText:     true,
	TypeNumber:   true,
	TypeBoolean:  true,
	TypeDatetime: true,
	TypeUser:     true,
	TypeImage:    true,
}

// Known reports whether t is a member of the type enumeration.
func (t FieldType) Known() bool {
	return knownTypes[t]
}

// IsReference reports whether values of this type embed an entity reference.
func (t FieldType) IsReference() bool {
	return t == TypeUser || t == TypeImage
}
