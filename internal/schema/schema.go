// Package schema validates request payloads against a declarative per-kind
// field table. Every rejected field is reported at once; a payload is either
// accepted whole or not at all.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Op selects which rules apply to a payload.
type Op int

const (
	// Create requires every required field and fills in defaults.
	Create Op = iota
	// Update accepts any subset of fields and never fills in defaults.
	Update
)

// FieldType is the JSON shape accepted for a field.
type FieldType int

const (
	String FieldType = iota
	Integer
	Boolean
	UUID
	Object
	Enum
)

// Messages reported in field errors.
const (
	MsgRequired = "required key not provided"
	MsgExtraKey = "extra keys not allowed"
	MsgString   = "not a valid string"
	MsgInteger  = "not a valid integer"
	MsgBoolean  = "not a valid boolean"
	MsgUUID     = "not a valid uuid"
	MsgObject   = "not a valid dict"
	MsgNotEmpty = "length must be at least 1"
	MsgPriority = "not a valid priority integer (must be between 0 and 1000)"
	MsgLabel    = "not a valid label (uppercase letters, digits and underscores)"
)

// Field describes one accepted key.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Rules is a validator tag evaluated against the decoded value.
	Rules string
	// Message replaces the generic message when Rules rejects the value.
	Message string
	// Values lists the accepted strings of an Enum field.
	Values []string
	// Default is applied on Create when the key is absent.
	Default interface{}
}

// Schema is the ordered field list of one resource kind.
type Schema struct {
	Kind   models.Kind
	Fields []Field
}

// Payload is a validated payload. Values are normalized: strings, int64, bool,
// uuid.UUID and map[string]interface{} for objects.
type Payload map[string]interface{}

// Has reports whether key was present (or defaulted).
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the string value of key.
func (p Payload) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Int returns the integer value of key.
func (p Payload) Int(key string) int64 {
	n, _ := p[key].(int64)
	return n
}

// Bool returns the boolean value of key.
func (p Payload) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// UUID returns the uuid value of key, uuid.Nil when absent.
func (p Payload) UUID(key string) uuid.UUID {
	id, _ := p[key].(uuid.UUID)
	return id
}

// Object returns the object value of key.
func (p Payload) Object(key string) map[string]interface{} {
	m, _ := p[key].(map[string]interface{})
	return m
}

var (
	labelPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	validate     = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("label", func(fl validator.FieldLevel) bool {
		return labelPattern.MatchString(fl.Field().String())
	})
	return v
}

// Decode reads a JSON object from r. Numbers are kept as json.Number so that
// integers can be told apart from floats. An empty body decodes to an empty object.
func Decode(r io.Reader) (map[string]interface{}, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, apperrors.ErrMalformedBody
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, apperrors.ErrMalformedBody
	}
	return obj, nil
}

// Validate checks raw against the schema of kind.
func Validate(kind models.Kind, op Op, raw map[string]interface{}) (Payload, error) {
	s, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", kind)
	}
	return s.Validate(op, raw)
}

// Validate checks raw against the schema. The returned error is an
// apperrors.FieldErrors holding one message per rejected key.
func (s *Schema) Validate(op Op, raw map[string]interface{}) (Payload, error) {
	errs := apperrors.FieldErrors{}
	out := Payload{}

	known := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
	}
	for key := range raw {
		if _, ok := known[key]; !ok {
			errs[key] = MsgExtraKey
		}
	}

	for _, f := range s.Fields {
		value, present := raw[f.Name]
		if !present {
			if op == Create {
				if f.Required {
					errs[f.Name] = MsgRequired
				} else if f.Default != nil {
					out[f.Name] = f.Default
				}
			}
			continue
		}

		normalized, msg := f.coerce(value)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		out[f.Name] = normalized
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f Field) coerce(value interface{}) (interface{}, string) {
	var normalized interface{}

	switch f.Type {
	case String:
		s, ok := value.(string)
		if !ok {
			return nil, MsgString
		}
		normalized = s
	case Integer:
		num, ok := value.(json.Number)
		if !ok {
			return nil, MsgInteger
		}
		n, err := num.Int64()
		if err != nil {
			return nil, MsgInteger
		}
		normalized = n
	case Boolean:
		b, ok := value.(bool)
		if !ok {
			return nil, MsgBoolean
		}
		normalized = b
	case UUID:
		s, ok := value.(string)
		if !ok {
			return nil, MsgUUID
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, MsgUUID
		}
		return id, ""
	case Object:
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, MsgObject
		}
		return m, ""
	case Enum:
		s, ok := value.(string)
		if !ok || !contains(f.Values, s) {
			return nil, enumMessage(f.Values)
		}
		return s, ""
	}

	if f.Rules != "" {
		if err := validate.Var(normalized, f.Rules); err != nil {
			if f.Message != "" {
				return nil, f.Message
			}
			return nil, ruleMessage(err)
		}
	}
	return normalized, ""
}

func ruleMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "min":
			return "value must be at least " + fe.Param()
		case "max":
			return "value must be at most " + fe.Param()
		}
		return "not a valid value (" + fe.Tag() + ")"
	}
	return "not a valid value"
}

func enumMessage(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return "not a valid value (one of: " + strings.Join(sorted, ", ") + ")"
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
