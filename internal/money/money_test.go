package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want Cents
	}{
		{"15", 1500},
		{"15.5", 1550},
		{"15.50", 1550},
		{"0.05", 5},
		{"0", 0},
		{"-3.25", -325},
		{" 12.00 ", 1200},
	}
	for _, tc := range cases {
		got, err := ParseDecimal(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseDecimalRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "12.3x", "1,50"} {
		_, err := ParseDecimal(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCentsJSONRoundTrip(t *testing.T) {
	var c Cents
	require.NoError(t, json.Unmarshal([]byte("15.5"), &c))
	assert.Equal(t, Cents(1550), c)

	out, err := json.Marshal(Cents(1550))
	require.NoError(t, err)
	assert.Equal(t, "15.50", string(out))
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "45.00", Cents(4500).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-3.25", Cents(-325).String())
}

func TestFormatterFormat(t *testing.T) {
	f, err := NewFormatter("es-MX", "MXN")
	require.NoError(t, err)

	assert.Equal(t, "$45.00", f.Format(4500))
	assert.Equal(t, "$0.05", f.Format(5))
	assert.Equal(t, "-$3.25", f.Format(-325))
}

func TestFormatterUnknownCurrencyFallsBackToCode(t *testing.T) {
	f, err := NewFormatter("en", "COP")
	require.NoError(t, err)

	assert.Equal(t, "COP 10.00", f.Format(1000))
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	_, err := NewFormatter("not a locale", "MXN")
	assert.Error(t, err)
}
