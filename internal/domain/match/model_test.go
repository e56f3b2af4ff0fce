package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("COMPLETED")
	require.True(t, ok)
	require.Equal(t, StatusCompleted, s)

	for _, raw := range []string{"completed", " PROCESSING ", "Pending", "FAILED", ""} {
		_, ok := ParseStatus(raw)
		require.False(t, ok, "status %q should be rejected", raw)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("SUNDAY_LEAGUE")
	require.NoError(t, err)
	require.Equal(t, LevelSundayLeague, l)

	_, err = ParseLevel("sunday_league")
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Arsenal vs Chelsea", Title(" Arsenal", "Chelsea "))
}
