package ident

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDGenerator_Format(t *testing.T) {
	gen := UUIDGenerator{}

	for i := 0; i < 100; i++ {
		id := gen.NewID()
		assert.Len(t, id, 36)
		assert.Regexp(t, uuidV4Pattern, id, "version nibble must be 4, variant in {8,9,a,b}")
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"full uuid", "550e8400-e29b-41d4-a716-446655440000", "e29b"},
		{"two groups", "abcd-ef01", "ef01"},
		{"no hyphen falls back to full id", "12345", "12345"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortID(tt.id))
		})
	}
}

func TestFixedGenerator_ReturnsInOrder(t *testing.T) {
	gen := NewFixedGenerator("a", "b", "c")

	assert.Equal(t, "a", gen.NewID())
	assert.Equal(t, "b", gen.NewID())
	assert.Equal(t, "c", gen.NewID())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("only")
	gen.NewID()

	assert.Panics(t, func() { gen.NewID() })
}
