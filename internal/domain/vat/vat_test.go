package vat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incassopro/incasso-api/internal/domain"
	"github.com/incassopro/incasso-api/internal/domain/vat"
)

func TestNormalize_AcceptedVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BE0473416418", "BE0473416418"},
		{"be 0473.416.418", "BE0473416418"},
		{"0473416418", "BE0473416418"},
		{"473416418", "BE0473416418"}, // legacy 9-digit form
		{"BE 0473-416-418", "BE0473416418"},
		{"  0473 416 418\t", "BE0473416418"},
	}
	for _, tc := range cases {
		got, err := vat.Normalize(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	once, err := vat.Normalize("473.416.418")
	require.NoError(t, err)
	twice, err := vat.Normalize(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestNormalize_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"BE",
		"ACME BVBA",
		"04734164",     // 8 digits
		"04734164181",  // 11 digits
		"047341641X",   // non-digit
		"FR0473416418", // wrong country prefix leaves letters behind
	} {
		_, err := vat.Normalize(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrInvalidVAT, "input %q", in)
	}
}

func TestDigits_StripsPrefix(t *testing.T) {
	got, err := vat.Digits("BE 0473.416.418")
	require.NoError(t, err)
	assert.Equal(t, "0473416418", got)
}

func TestIsVATQuery(t *testing.T) {
	assert.True(t, vat.IsVATQuery("BE0473416418"))
	assert.True(t, vat.IsVATQuery("473416418"))
	assert.False(t, vat.IsVATQuery("Acme Bakery"))
	assert.False(t, vat.IsVATQuery("12345"))
}
