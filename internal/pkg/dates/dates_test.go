package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	in := time.Date(2025, 1, 15, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Normalize(in))
}

func TestDaysUntil(t *testing.T) {
	jan1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(jan1, jan1))
	assert.Equal(t, 30, DaysUntil(jan1, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysUntil(jan1, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))

	// Time-of-day must not bleed into the day count.
	morning := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(morning, evening))
}

func TestParse(t *testing.T) {
	parsed, err := Parse("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), parsed)

	_, err = Parse("30/06/2025")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	d := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-30", FormatISO(d))
	assert.Equal(t, "30/06/2025", FormatNZ(d))
}
