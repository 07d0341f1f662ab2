package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenOTPCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "code must be numeric: %q", code)
		}
		seen[code] = true
	}
	// 100 draws from a million-value space collapsing to a handful would
	// point at a broken generator.
	require.Greater(t, len(seen), 90)
}
