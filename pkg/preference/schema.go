// Package preference maps free-text travel utterances onto a fixed schema of preference fields.
//
// A Schema declares the fields, their canonical values and the example phrases (anchors) of
// every value. A Resolver embeds an utterance and compares it with the anchors by cosine
// similarity, filling the unset fields of a Record whose best match clears a threshold.
// Declaration order of fields, values and examples is significant: it defines the canonical
// field order and the tie-break between equally similar values.
package preference

import (
	"errors"
	"fmt"
	"strings"
)

// FieldID identifies a preference field
type FieldID string

// built-in travel preference fields, in canonical order
const (
	FieldPace           FieldID = "pace"
	FieldAgeGroup       FieldID = "age_group"
	FieldMobility       FieldID = "mobility"
	FieldLanguage       FieldID = "language"
	FieldAvoid          FieldID = "avoid"
	FieldMood           FieldID = "mood"
	FieldAttraction     FieldID = "attraction"
	FieldFood           FieldID = "food"
	FieldAccommodation  FieldID = "accommodation"
	FieldTransportation FieldID = "transportation"
)

var (
	// ErrInvalidInput is returned for records, thresholds or schema definitions the schema can't accept
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbedding is returned when the embedding service fails or returns unusable vectors
	ErrEmbedding = errors.New("embedding service failure")
)

// Value is a canonical value of a field with the example phrases expressing it
type Value struct {
	Name     string   `yaml:"name" json:"name"`
	Examples []string `yaml:"examples" json:"examples"`
}

// Field is a preference field definition
type Field struct {
	ID          FieldID `yaml:"id" json:"id"`
	Description string  `yaml:"description" json:"description"`
	Values      []Value `yaml:"values" json:"values"`
}

// Schema is an immutable, ordered set of preference fields.
// It is safe for concurrent use; nothing mutates it after NewSchema returns.
type Schema struct {
	fields []Field
	order  []FieldID
	index  map[FieldID]int
}

// NewSchema validates field definitions and creates a schema keeping their order.
// Field ids must be unique and non-empty, value names unique and non-empty within a field,
// example phrases non-blank.
// A field without values is allowed, it just can never be filled.
func NewSchema(fields []Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		order:  make([]FieldID, 0, len(fields)),
		index:  make(map[FieldID]int, len(fields)),
	}

	for _, f := range fields {
		id := FieldID(strings.TrimSpace(string(f.ID)))
		if id == "" {
			return nil, fmt.Errorf("%w: empty field id", ErrInvalidInput)
		}
		if _, dup := s.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidInput, id)
		}

		values := make([]Value, 0, len(f.Values))
		seen := make(map[string]bool, len(f.Values))
		for _, v := range f.Values {
			name := strings.TrimSpace(v.Name)
			if name == "" {
				return nil, fmt.Errorf("%w: empty value name in field %q", ErrInvalidInput, id)
			}
			if seen[name] {
				return nil, fmt.Errorf("%w: duplicate value %q in field %q", ErrInvalidInput, name, id)
			}
			for _, ex := range v.Examples {
				if strings.TrimSpace(ex) == "" {
					return nil, fmt.Errorf("%w: empty example of value %q in field %q", ErrInvalidInput, name, id)
				}
			}
			seen[name] = true
			values = append(values, Value{Name: name, Examples: append([]string(nil), v.Examples...)})
		}

		s.index[id] = len(s.fields)
		s.fields = append(s.fields, Field{ID: id, Description: f.Description, Values: values})
		s.order = append(s.order, id)
	}

	return s, nil
}

// AllFields returns every field id in canonical order
func (s *Schema) AllFields() []FieldID {
	return append([]FieldID(nil), s.order...)
}

// Field returns a copy of the field definition, false if the field is not defined
func (s *Schema) Field(id FieldID) (Field, bool) {
	i, ok := s.index[id]
	if !ok {
		return Field{}, false
	}
	f := s.fields[i]
	return Field{ID: f.ID, Description: f.Description, Values: s.Values(id)}, true
}

// Description returns the human-readable description of a field, empty for an unknown field
func (s *Schema) Description(id FieldID) string {
	if i, ok := s.index[id]; ok {
		return s.fields[i].Description
	}
	return ""
}

// Values returns the ordered canonical values of a field, nil for an unknown field
func (s *Schema) Values(id FieldID) []Value {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	res := make([]Value, len(s.fields[i].Values))
	for j, v := range s.fields[i].Values {
		res[j] = Value{Name: v.Name, Examples: append([]string(nil), v.Examples...)}
	}
	return res
}

// ValueCandidates returns value name -> example phrases for a field.
// The map is empty, never nil, for an unknown field or a field without values.
func (s *Schema) ValueCandidates(id FieldID) map[string][]string {
	res := map[string][]string{}
	i, ok := s.index[id]
	if !ok {
		return res
	}
	for _, v := range s.fields[i].Values {
		res[v.Name] = append([]string(nil), v.Examples...)
	}
	return res
}

// AllValueCandidates returns a snapshot of value candidates for every field
func (s *Schema) AllValueCandidates() map[FieldID]map[string][]string {
	res := make(map[FieldID]map[string][]string, len(s.order))
	for _, id := range s.order {
		res[id] = s.ValueCandidates(id)
	}
	return res
}

// FieldsWithCandidates returns fields having at least one value, in canonical order
func (s *Schema) FieldsWithCandidates() []FieldID {
	var res []FieldID
	for _, f := range s.fields {
		if len(f.Values) > 0 {
			res = append(res, f.ID)
		}
	}
	return res
}

// Examples returns every example phrase of the schema, deduplicated, in declaration order
func (s *Schema) Examples() []string {
	seen := map[string]bool{}
	var res []string
	for _, f := range s.fields {
		for _, v := range f.Values {
			for _, ex := range v.Examples {
				if seen[ex] {
					continue
				}
				seen[ex] = true
				res = append(res, ex)
			}
		}
	}
	return res
}

// hasValue checks if value is a canonical value of the field
func (s *Schema) hasValue(id FieldID, value string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	for _, v := range s.fields[i].Values {
		if v.Name == value {
			return true
		}
	}
	return false
}
