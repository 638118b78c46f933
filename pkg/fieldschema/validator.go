package fieldschema

import (
	"context"
	"fmt"
	"math"
	"time"

	"spacenotes-be/internal/apperror"
	"spacenotes-be/pkg/identifier"
)

// UserResolver reports whether a username currently names an existing user.
// Looked up fresh on every call; results are not cached across one
// validation to avoid stale reads within a single write.
type UserResolver func(ctx context.Context, username string) (bool, error)

// AttachmentResolver reports whether an attachment number exists in the
// space being validated. Cross-space references are never resolvable.
type AttachmentResolver func(ctx context.Context, number int64) (bool, error)

// Validator checks a candidate field payload against a space schema and
// resolves embedded references through the live store.
type Validator struct {
	Users       UserResolver
	Attachments AttachmentResolver
}

// Validate returns the normalized payload, or a FieldValidationError
// collecting every per-field failure. Resolver infrastructure errors
// abort validation and are returned as-is.
func (v *Validator) Validate(ctx context.Context, schema Schema, payload map[string]interface{}) (map[string]interface{}, error) {
	ferr := &apperror.FieldValidationError{}
	normalized := make(map[string]interface{}, len(payload))

	for _, def := range schema {
		if value, present := payload[def.ID]; def.Required && (!present || value == nil) {
			ferr.Add(def.ID, "required field missing")
		}
	}

	for id, value := range payload {
		def, ok := schema.Field(id)
		if !ok {
			ferr.Add(id, "unknown field")
			continue
		}
		if value == nil {
			if def.Required {
				// already reported as missing above
				continue
			}
			normalized[id] = nil
			continue
		}

		out, reason, err := v.checkValue(ctx, def, value)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			ferr.Add(id, reason)
			continue
		}
		normalized[id] = out
	}

	if ferr.HasErrors() {
		return nil, ferr
	}
	return normalized, nil
}

// checkValue dispatches on the declared type. It returns the normalized
// value, or a non-empty rejection reason, or an infrastructure error.
func (v *Validator) checkValue(ctx context.Context, def FieldDef, value interface{}) (interface{}, string, error) {
	switch def.Type {
	case TypeText:
		s, ok := value.(string)
		if !ok {
			return nil, "must be a string", nil
		}
		return s, "", nil

	case TypeNumber:
		n, ok := asFloat(value)
		if !ok {
			return nil, "must be a number", nil
		}
		return n, "", nil

	case TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, "must be a boolean", nil
		}
		return b, "", nil

	case TypeDatetime:
		s, ok := value.(string)
		if !ok {
			return nil, "must be an RFC 3339 timestamp string", nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, "must be an RFC 3339 timestamp string", nil
		}
		return t.UTC().Format(time.RFC3339), "", nil

	case TypeUser:
		s, ok := value.(string)
		if !ok {
			return nil, "must be a username string", nil
		}
		username, err := identifier.NormalizeUsername(s)
		if err != nil {
			return nil, "must be a valid username", nil
		}
		exists, err := v.Users(ctx, username)
		if err != nil {
			return nil, "", err
		}
		if !exists {
			return nil, fmt.Sprintf("references unknown user %q", username), nil
		}
		return username, "", nil

	case TypeImage:
		number, ok := asInt(value)
		if !ok {
			return nil, "must be an attachment number", nil
		}
		if _, err := identifier.ValidateNumber(number); err != nil {
			return nil, "must be a positive attachment number", nil
		}
		exists, err := v.Attachments(ctx, number)
		if err != nil {
			return nil, "", err
		}
		if !exists {
			return nil, fmt.Sprintf("references unknown attachment %d in this space", number), nil
		}
		return number, "", nil

	default:
		return nil, "unknown field type", nil
	}
}

func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asInt(value interface{}) (int64, bool) {
	switch n := value.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		// JSON decodes numbers to float64; accept only integral values
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
