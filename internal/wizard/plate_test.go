package wizard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC-123"},
		{"ABC-123", "ABC-123"},
		{"ab", "AB"},
		{"abc", "ABC"},
		{"abc1", "ABC-1"},
		{"a b-c 1!2@3", "ABC-123"},
		{"abcd12345678", "ABC-D12"},
		{"", ""},
		{"xy z9", "XYZ-9"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatPlate(tc.in), "input %q", tc.in)
	}
}

func TestFormatPlateProperties(t *testing.T) {
	inputs := []string{"abc123", "zzzzzzzzzz", "1a2b3c4d", "  --!!  ", "Ñkj123", "mno45p"}
	for _, in := range inputs {
		got := FormatPlate(in)
		require.LessOrEqual(t, len(got), 7, "input %q", in)
		require.Equal(t, strings.ToUpper(got), got, "input %q", in)
		if idx := strings.Index(got, "-"); idx != -1 {
			require.Equal(t, 3, idx, "hyphen only after the 3rd character, input %q", in)
			require.NotContains(t, got[idx+1:], "-", "single hyphen, input %q", in)
		}
	}
}

func TestValidPlateCar(t *testing.T) {
	for _, vt := range []string{"car", "suv"} {
		require.True(t, ValidPlate("ABC-123", vt))
		require.False(t, ValidPlate("ABC-12", vt), "too few digits for %s", vt)
		require.False(t, ValidPlate("ABC-12A", vt), "trailing letter only valid for motorcycles")
		require.False(t, ValidPlate("AB-123", vt))
		require.False(t, ValidPlate("abc-123", vt), "lowercase must be rejected")
		require.False(t, ValidPlate("", vt))
	}
}

func TestValidPlateMotorcycle(t *testing.T) {
	require.True(t, ValidPlate("ABC-12", "motorcycle"))
	require.True(t, ValidPlate("ABC-12A", "motorcycle"))
	require.False(t, ValidPlate("ABC-123", "motorcycle"))
	require.False(t, ValidPlate("ABC-1", "motorcycle"))
	require.False(t, ValidPlate("ABC-12AB", "motorcycle"))
}

func TestValidPlateAfterFormat(t *testing.T) {
	require.True(t, ValidPlate(FormatPlate("abc123"), "car"))
	require.True(t, ValidPlate(FormatPlate("xyz45"), "motorcycle"))
	require.True(t, ValidPlate(FormatPlate("xyz45b"), "motorcycle"))
	require.False(t, ValidPlate(FormatPlate("abc123"), "motorcycle"))
	require.False(t, ValidPlate(FormatPlate("xyz45"), "car"))
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail("juan@test.com"))
	require.True(t, ValidEmail("maria.lopez+spam@sub.dominio.cl"))
	require.False(t, ValidEmail(""))
	require.False(t, ValidEmail("juan@test"))
	require.False(t, ValidEmail("juan test@test.com"))
	require.False(t, ValidEmail("@test.com"))
}
