package rank

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Validate_AcceptsAllocatorOutput(t *testing.T) {
	valid := []Key{
		"a0", "a1", "a9", "aA", "aZ", "az",
		"b00", "b42", "c000",
		"Zz", "Zy", "Z0", "Yzz",
		"a0V", "a0G", "a004", "b125",
	}
	for _, k := range valid {
		assert.NoError(t, k.Validate(), "key %q should be valid", k)
	}
}

func TestKey_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{name: "empty", key: ""},
		{name: "reserved_minimum", key: Key(smallestInteger)},
		{name: "head_not_a_letter", key: "0a"},
		{name: "truncated_integer", key: "b1"},
		{name: "non_digit_byte", key: "a!"},
		{name: "fraction_ends_in_zero", key: "a00"},
		{name: "long_fraction_ends_in_zero", key: "a0V0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.key.Validate())
		})
	}
}

func TestKey_IsZero(t *testing.T) {
	assert.True(t, Key("").IsZero())
	assert.False(t, Key("a0").IsZero())
}

func TestCompare_BytewiseIsNumeric(t *testing.T) {
	// Shuffled keys across negative integers, positive integers, and
	// fractions sort into numeric order under plain bytewise comparison.
	keys := []Key{"a1", "Zz", "a0G", "a0", "b00", "Yzz", "a0V", "az", "a004"}
	want := []Key{"Yzz", "Zz", "a0", "a004", "a0G", "a0V", "a1", "az", "b00"}

	sort.Slice(keys, func(i, j int) bool { return Less(keys[i], keys[j]) })
	require.Equal(t, want, keys)

	for i := 1; i < len(keys); i++ {
		assert.Equal(t, -1, Compare(keys[i-1], keys[i]))
		assert.Equal(t, 1, Compare(keys[i], keys[i-1]))
	}
	assert.Equal(t, 0, Compare("a0", "a0"))
}

func TestCompare_ZeroSortsFirst(t *testing.T) {
	assert.Equal(t, -1, Compare("", "a0"))
	assert.True(t, Less("", "Yzz"))
}
