package preference

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_EmptyRecord(t *testing.T) {
	s := DefaultSchema()
	rec := s.EmptyRecord()

	values := rec.Values()
	assert.Len(t, values, 10)
	for _, id := range s.AllFields() {
		v, ok := values[string(id)]
		assert.True(t, ok, "field %s must be present", id)
		assert.Equal(t, "", v)
	}
	assert.False(t, rec.Complete())
	assert.Empty(t, rec.Filled())
}

func TestSchema_RecordFrom(t *testing.T) {
	s := DefaultSchema()

	t.Run("partial values", func(t *testing.T) {
		rec, err := s.RecordFrom(map[string]string{"pace": "relaxed", "food": " feature ", "mood": "  "})
		require.NoError(t, err)
		assert.Equal(t, "relaxed", rec.Get(FieldPace))
		assert.Equal(t, "feature", rec.Get(FieldFood))
		assert.False(t, rec.IsSet(FieldMood))
		assert.Len(t, rec.Values(), 10)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := s.RecordFrom(map[string]string{"budget": "low"})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), `unknown field "budget"`)
	})

	t.Run("value outside field", func(t *testing.T) {
		_, err := s.RecordFrom(map[string]string{"pace": "feature"})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), `value "feature" is not defined for field "pace"`)
	})

	t.Run("nil map", func(t *testing.T) {
		rec, err := s.RecordFrom(nil)
		require.NoError(t, err)
		assert.True(t, rec.Equal(s.EmptyRecord()))
	})
}

func TestSchema_MissingFields(t *testing.T) {
	s := DefaultSchema()

	rec, err := s.RecordFrom(map[string]string{"pace": "tight", "mobility": "weak", "transportation": "fast"})
	require.NoError(t, err)

	assert.Equal(t, []FieldID{FieldAgeGroup, FieldLanguage, FieldAvoid, FieldMood, FieldAttraction,
		FieldFood, FieldAccommodation}, s.MissingFields(rec))
	assert.Equal(t, []FieldID{FieldPace, FieldMobility, FieldTransportation}, rec.Filled())

	id, desc, ok := s.NextMissingField(rec)
	assert.True(t, ok)
	assert.Equal(t, FieldAgeGroup, id)
	assert.Equal(t, "age group of the travelers", desc)
}

func TestSchema_NextMissingField_Complete(t *testing.T) {
	s := DefaultSchema()
	values := map[string]string{}
	for _, id := range s.AllFields() {
		values[string(id)] = s.Values(id)[0].Name
	}
	rec, err := s.RecordFrom(values)
	require.NoError(t, err)

	assert.True(t, rec.Complete())
	assert.Empty(t, s.MissingFields(rec))
	id, desc, ok := s.NextMissingField(rec)
	assert.False(t, ok)
	assert.Equal(t, FieldID(""), id)
	assert.Equal(t, "", desc)
}

func TestRecord_JSONAndDiff(t *testing.T) {
	s, err := NewSchema([]Field{
		{ID: "pace", Values: []Value{{Name: "relaxed"}, {Name: "tight"}}},
		{ID: "food", Values: []Value{{Name: "feature"}}},
	})
	require.NoError(t, err)

	before, err := s.RecordFrom(map[string]string{"pace": "relaxed"})
	require.NoError(t, err)
	after, err := s.RecordFrom(map[string]string{"pace": "relaxed", "food": "feature"})
	require.NoError(t, err)

	data, err := json.Marshal(after)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pace":"relaxed","food":"feature"}`, string(data))

	data, err = json.Marshal(s.EmptyRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{"pace":"","food":""}`, string(data))

	assert.Equal(t, []FieldID{"food"}, Diff(before, after))
	assert.Empty(t, Diff(after, after))
	assert.False(t, before.Equal(after))
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "scaled", a: []float32{1, 1}, b: []float32{3, 3}, want: 1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 0}, wantErr: true},
		{name: "empty", a: nil, b: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, math.Abs(got), 1.0)
		})
	}
}
