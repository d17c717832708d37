package preference

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record holds the current value of every schema field, "" for unset.
// Records are values: the schema and the resolver return new records and never modify
// a record they were given.
type Record struct {
	order  []FieldID // shared with the schema, read-only
	values map[FieldID]string
}

// EmptyRecord returns a record with every field unset
func (s *Schema) EmptyRecord() Record {
	values := make(map[FieldID]string, len(s.order))
	for _, id := range s.order {
		values[id] = ""
	}
	return Record{order: s.order, values: values}
}

// RecordFrom builds a record from field -> value pairs, e.g. a stored session or an API request.
// Fields missing from the map are unset, whitespace-only values count as unset.
// Unknown fields and values outside the field's value set are rejected with ErrInvalidInput.
func (s *Schema) RecordFrom(values map[string]string) (Record, error) {
	rec := s.EmptyRecord()
	for k, v := range values {
		id := FieldID(k)
		if _, ok := s.index[id]; !ok {
			return Record{}, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, k)
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !s.hasValue(id, v) {
			return Record{}, fmt.Errorf("%w: value %q is not defined for field %q", ErrInvalidInput, v, k)
		}
		rec.values[id] = v
	}
	return rec, nil
}

// MissingFields returns unset fields in canonical order
func (s *Schema) MissingFields(rec Record) []FieldID {
	var res []FieldID
	for _, id := range s.order {
		if !rec.IsSet(id) {
			res = append(res, id)
		}
	}
	return res
}

// NextMissingField returns the first unset field in canonical order with its description.
// It returns ("", "", false) when every field is set.
func (s *Schema) NextMissingField(rec Record) (id FieldID, description string, ok bool) {
	for _, fid := range s.order {
		if !rec.IsSet(fid) {
			return fid, s.Description(fid), true
		}
	}
	return "", "", false
}

// validate checks that every entry of the record belongs to the schema
func (s *Schema) validate(rec Record) error {
	for id, v := range rec.values {
		if _, ok := s.index[id]; !ok {
			return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, id)
		}
		if v != "" && !s.hasValue(id, v) {
			return fmt.Errorf("%w: value %q is not defined for field %q", ErrInvalidInput, v, id)
		}
	}
	return nil
}

// Get returns the value of a field, "" if unset or unknown
func (r Record) Get(id FieldID) string {
	return strings.TrimSpace(r.values[id])
}

// IsSet checks if the field has a value
func (r Record) IsSet(id FieldID) bool {
	return r.Get(id) != ""
}

// Complete checks if every field is set
func (r Record) Complete() bool {
	for _, id := range r.order {
		if !r.IsSet(id) {
			return false
		}
	}
	return true
}

// Filled returns set fields in canonical order
func (r Record) Filled() []FieldID {
	var res []FieldID
	for _, id := range r.order {
		if r.IsSet(id) {
			res = append(res, id)
		}
	}
	return res
}

// Values returns a copy of all field values keyed by field name, unset fields included
func (r Record) Values() map[string]string {
	res := make(map[string]string, len(r.values))
	for id, v := range r.values {
		res[string(id)] = v
	}
	return res
}

// Equal checks if both records hold the same values
func (r Record) Equal(other Record) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for id, v := range r.values {
		ov, ok := other.values[id]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the record as an object with every field
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// clone returns a deep copy sharing only the read-only field order
func (r Record) clone() Record {
	values := make(map[FieldID]string, len(r.values))
	for id, v := range r.values {
		values[id] = v
	}
	return Record{order: r.order, values: values}
}

// set assigns a value, used by the resolver only
func (r Record) set(id FieldID, value string) {
	r.values[id] = value
}

// Diff returns fields set in after but not in before, in after's canonical order
func Diff(before, after Record) []FieldID {
	var res []FieldID
	for _, id := range after.order {
		if after.IsSet(id) && !before.IsSet(id) {
			res = append(res, id)
		}
	}
	return res
}
