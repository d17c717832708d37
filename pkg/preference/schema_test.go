package preference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	assert.Equal(t, []FieldID{FieldPace, FieldAgeGroup, FieldMobility, FieldLanguage, FieldAvoid,
		FieldMood, FieldAttraction, FieldFood, FieldAccommodation, FieldTransportation}, s.AllFields())
	assert.Equal(t, s.AllFields(), s.FieldsWithCandidates())

	for _, id := range s.AllFields() {
		assert.NotEmpty(t, s.Description(id), "field %s", id)
		for name, examples := range s.ValueCandidates(id) {
			assert.NotEmpty(t, examples, "value %s.%s has no examples", id, name)
		}
	}

	pace := s.ValueCandidates(FieldPace)
	assert.Len(t, pace, 3)
	assert.Contains(t, pace["relaxed"], "take it slow")
	assert.Contains(t, pace["tight"], "pack the schedule")
	assert.Len(t, s.ValueCandidates(FieldAccommodation), 7)
}

func TestNewSchema_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		errMsg string
	}{
		{name: "empty field id", fields: []Field{{ID: " "}}, errMsg: "empty field id"},
		{name: "duplicate field", fields: []Field{{ID: "pace"}, {ID: "pace"}}, errMsg: `duplicate field "pace"`},
		{name: "empty value", fields: []Field{{ID: "pace", Values: []Value{{Name: ""}}}}, errMsg: "empty value name"},
		{name: "duplicate value", fields: []Field{{ID: "pace", Values: []Value{{Name: "slow"}, {Name: "slow"}}}},
			errMsg: `duplicate value "slow"`},
		{name: "empty example", fields: []Field{{ID: "pace", Values: []Value{{Name: "slow", Examples: []string{"take it slow", ""}}}}},
			errMsg: `empty example of value "slow" in field "pace"`},
		{name: "blank example", fields: []Field{{ID: "pace", Values: []Value{{Name: "slow", Examples: []string{" \t"}}}}},
			errMsg: "empty example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.fields)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSchema_Accessors(t *testing.T) {
	s, err := NewSchema([]Field{
		{ID: "pace", Description: "travel pace", Values: []Value{
			{Name: "relaxed", Examples: []string{"take it slow", "no rush"}},
			{Name: "tight", Examples: []string{"pack the schedule", "no rush"}},
		}},
		{ID: "avoid", Description: "things to avoid"},
	})
	require.NoError(t, err)

	t.Run("description", func(t *testing.T) {
		assert.Equal(t, "travel pace", s.Description("pace"))
		assert.Equal(t, "", s.Description("budget"))
	})

	t.Run("value candidates", func(t *testing.T) {
		assert.Equal(t, map[string][]string{
			"relaxed": {"take it slow", "no rush"},
			"tight":   {"pack the schedule", "no rush"},
		}, s.ValueCandidates("pace"))

		empty := s.ValueCandidates("avoid")
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
		assert.Empty(t, s.ValueCandidates("budget"))
	})

	t.Run("all value candidates is a snapshot", func(t *testing.T) {
		all := s.AllValueCandidates()
		assert.Len(t, all, 2)
		all["pace"]["relaxed"][0] = "changed"
		delete(all, "avoid")
		assert.Equal(t, "take it slow", s.ValueCandidates("pace")["relaxed"][0])
		assert.Len(t, s.AllValueCandidates(), 2)
	})

	t.Run("values keep declaration order", func(t *testing.T) {
		values := s.Values("pace")
		require.Len(t, values, 2)
		assert.Equal(t, "relaxed", values[0].Name)
		assert.Equal(t, "tight", values[1].Name)
		values[0].Examples[0] = "changed"
		assert.Equal(t, "take it slow", s.Values("pace")[0].Examples[0])
		assert.Nil(t, s.Values("budget"))
	})

	t.Run("field lookup", func(t *testing.T) {
		f, ok := s.Field("pace")
		require.True(t, ok)
		assert.Equal(t, "travel pace", f.Description)
		_, ok = s.Field("budget")
		assert.False(t, ok)
	})

	t.Run("fields with candidates", func(t *testing.T) {
		assert.Equal(t, []FieldID{"pace"}, s.FieldsWithCandidates())
	})

	t.Run("examples deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{"take it slow", "no rush", "pack the schedule"}, s.Examples())
	})

	t.Run("all fields returns a copy", func(t *testing.T) {
		fields := s.AllFields()
		fields[0] = "changed"
		assert.Equal(t, []FieldID{"pace", "avoid"}, s.AllFields())
	})
}

func TestLoadSchema(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		content := `
fields:
  - id: transportation
    description: how to get around
    values:
      - name: fast
        examples: ["high-speed trains first"]
      - name: cheap
        examples: ["save money on transport"]
  - id: pace
    description: travel pace
    values:
      - name: relaxed
        examples: ["take it slow"]
`
		path := filepath.Join(t.TempDir(), "schema.yml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		s, err := LoadSchema(path)
		require.NoError(t, err)
		assert.Equal(t, []FieldID{FieldTransportation, FieldPace}, s.AllFields())
		assert.Equal(t, "how to get around", s.Description(FieldTransportation))
		values := s.Values(FieldTransportation)
		require.Len(t, values, 2)
		assert.Equal(t, "fast", values[0].Name)
		assert.Equal(t, []string{"high-speed trains first"}, values[0].Examples)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSchema("/non/existent/schema.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read schema file")
	})

	t.Run("no fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yml")
		require.NoError(t, os.WriteFile(path, []byte("fields: []\n"), 0o600))
		_, err := LoadSchema(path)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty example", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yml")
		content := "fields:\n  - id: pace\n    values:\n      - name: relaxed\n        examples: [\"\"]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, err := LoadSchema(path)
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "empty example")
	})

	t.Run("invalid definitions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yml")
		require.NoError(t, os.WriteFile(path, []byte("fields:\n  - id: pace\n  - id: pace\n"), 0o600))
		_, err := LoadSchema(path)
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "build schema")
	})
}
