package money

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$26.00", Format(big.NewInt(2600)))
	assert.Equal(t, "$0.05", Format(big.NewInt(5)))
	assert.Equal(t, "$0.00", Format(new(big.Int)))
	assert.Equal(t, "$184467440737095516.15", FormatCents(^uint64(0)))
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"12.50", 1250},
		{"12.5", 1250},
		{"$3", 300},
		{" 0.999 ", 100},
		{"0.125", 13},
		{"0.004", 0},
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "abc", "-1", "1e30"} {
		_, err := ParseCents(bad)
		assert.Error(t, err, bad)
	}
}
