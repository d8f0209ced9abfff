package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type id string

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{name: "single element", input: []string{"foo"}, expected: []string{"foo"}},
		{name: "first occurrence wins", input: []string{"b", "a", "b", "c", "a"}, expected: []string{"b", "a", "c"}},
		{name: "trims and drops blanks", input: []string{"  foo ", "bar", "foo", "", "  "}, expected: []string{"foo", "bar"}},
		{name: "case sensitive", input: []string{"Foo", "foo"}, expected: []string{"Foo", "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimNamedTypes(t *testing.T) {
	type ids []id
	got := DedupeAndTrim(ids{"x", " y", "x"})
	assert.Equal(t, ids{"x", "y"}, got)
}
