package scalar_test

import (
	"testing"

	"github.com/0xalexb/conftree/format/scalar"
	"github.com/0xalexb/conftree/header"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNumber(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		text     string
		expected any
	}{
		{name: "integer", text: "42", expected: int64(42)},
		{name: "negative integer with newline", text: "-7\n", expected: int64(-7)},
		{name: "float", text: "42.5", expected: 42.5},
		{name: "exponent", text: "1e3", expected: 1000.0},
		{name: "integer overflow falls back to float", text: "18446744073709551616", expected: 18446744073709551616.0},
		{name: "parenthesized complex", text: "(1+2j)", expected: complex(1, 2)},
		{name: "complex with i", text: "1-2i", expected: complex(1, -2)},
		{name: "imaginary only", text: " 3J ", expected: complex(0, 3)},
		{name: "bare imaginary unit", text: "j", expected: complex(0, 1)},
		{name: "negative bare unit", text: "-J", expected: complex(0, -1)},
		{name: "real plus bare unit", text: "1+j", expected: complex(1, 1)},
		{name: "padded parentheses", text: "( 1-j )", expected: complex(1, -1)},
		{name: "digit separators", text: "1_000", expected: int64(1000)},
		{name: "float digit separators", text: "1_000.5", expected: 1000.5},
		{name: "complex digit separators", text: "1_0+2_0j", expected: complex(10, 20)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			value, err := scalar.LoadNumber(tc.text, header.Options{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestLoadNumber_Malformed(t *testing.T) {
	t.Parallel()

	tests := []string{
		"", "forty-two", "1+", "(1+2j", "12abc",
		"0x1p-2", "0x10", "0X1P+3j",
		"1__000", "_1", "1_", "1_.5", "1e+j", "i",
	}

	for _, text := range tests {
		_, err := scalar.LoadNumber(text, header.Options{})
		require.ErrorIs(t, err, scalar.ErrNotNumber, text)
	}
}

func TestLoadInt_LoadFloat_LoadComplex(t *testing.T) {
	t.Parallel()

	value, err := scalar.LoadInt(" 12 ", header.Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), value)

	_, err = scalar.LoadInt("1.5", header.Options{})
	require.Error(t, err)

	value, err = scalar.LoadFloat("12", header.Options{})
	require.NoError(t, err)
	assert.InDelta(t, 12.0, value, 0)

	_, err = scalar.LoadFloat("(1+2j)", header.Options{})
	require.Error(t, err)

	_, err = scalar.LoadFloat("0x1p-2", header.Options{})
	require.ErrorIs(t, err, scalar.ErrHexLiteral)

	_, err = scalar.LoadInt("1__0", header.Options{})
	require.ErrorIs(t, err, scalar.ErrUnderscore)

	value, err = scalar.LoadComplex("2", header.Options{})
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), value)
}

func TestLoadBool(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text     string
		expected bool
	}{
		{text: "true", expected: true},
		{text: " TRUE\n", expected: true},
		{text: "False", expected: false},
	}

	for _, tc := range testCases {
		value, err := scalar.LoadBool(tc.text, header.Options{})
		require.NoError(t, err)
		assert.Equal(t, tc.expected, value)
	}

	_, err := scalar.LoadBool("yes", header.Options{})
	require.ErrorIs(t, err, scalar.ErrNotBoolean)
}

func TestLoadNone(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"", "  \n", "None", "NULL"} {
		value, err := scalar.LoadNone(text, header.Options{})
		require.NoError(t, err)
		assert.Nil(t, value)
	}

	_, err := scalar.LoadNone("nil", header.Options{})
	require.ErrorIs(t, err, scalar.ErrNotNone)
}

func TestLoadText(t *testing.T) {
	t.Parallel()

	value, err := scalar.LoadText("  keep\nall ", header.Options{})
	require.NoError(t, err)
	assert.Equal(t, "  keep\nall ", value)
}

func TestDescriptors(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}

	for _, descriptor := range scalar.Descriptors() {
		require.NoError(t, descriptor.Validate())
		assert.False(t, descriptor.HasDangerous(), descriptor.Name)

		for _, name := range descriptor.Names() {
			names[name] = true
		}
	}

	for _, name := range []string{"number", "num", "int", "integer", "float", "real", "complex", "bool", "boolean", "none", "null", "text"} {
		assert.True(t, names[name], name)
	}
}
