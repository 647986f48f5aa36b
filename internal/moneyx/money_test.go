package moneyx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/savingsbot/internal/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"300", 300, false},
		{" 250.50 ", 250.50, false},
		{"1,250.50", 1250.50, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			assert.True(t, errors.Is(err, common.ErrInvalidAmount), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, tc.in)
	}
}

func TestParseSigned(t *testing.T) {
	got, err := ParseSigned("+50")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-9)

	got, err = ParseSigned("-1000")
	require.NoError(t, err)
	assert.InDelta(t, -1000.0, got, 1e-9)

	got, err = ParseSigned("25")
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got, 1e-9)

	_, err = ParseSigned("0")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = ParseSigned("oops")
	assert.ErrorIs(t, err, common.ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "550.00", Format(550))
	assert.Equal(t, "1,234.50", Format(1234.5))
	assert.Equal(t, "1,234,567.80", Format(1234567.8))
	assert.Equal(t, "-12,000.00", Format(-12000))
}
