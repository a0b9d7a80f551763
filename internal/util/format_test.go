package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, "158.500 DT", FormatPrice(158.5))
	require.Equal(t, "0.000 DT", FormatPrice(0))
}

func TestParseDateInput(t *testing.T) {
	t.Parallel()

	got, err := ParseDateInput("2026-10-01")
	require.NoError(t, err)
	require.Equal(t, "2026-10-01", got)

	got, err = ParseDateInput("October 1, 2026")
	require.NoError(t, err)
	require.Equal(t, "2026-10-01", got)

	got, err = ParseDateInput("  ")
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = ParseDateInput("next tuesday")
	require.Error(t, err)
}

func TestFormatStarsAndForks(t *testing.T) {
	t.Parallel()

	require.Equal(t, "★★★☆☆", FormatStars(3))
	require.Equal(t, "⑂⑂", FormatForks(2))
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", TruncateString("short", 10))
	require.Equal(t, "long st...", TruncateString("long string here", 10))
}
