package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(510), tod)

	tod, err = ParseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(0), tod)

	tod, err = ParseTimeOfDay("23:59")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(23*60+59), tod)

	for _, bad := range []string{"", "8:3", "24:00", "12:60", "noon", "12-30"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTimeOfDayOfDropsSeconds(t *testing.T) {
	at := time.Date(2026, time.March, 10, 19, 45, 59, 123, time.UTC)
	assert.Equal(t, TimeOfDay(19*60+45), TimeOfDayOf(at))
}

func TestTimeOfDayAt(t *testing.T) {
	tod, err := ParseTimeOfDay("19:30")
	require.NoError(t, err)
	date := time.Date(2026, time.March, 10, 3, 4, 5, 6, time.UTC)

	at := tod.At(date)
	assert.Equal(t, time.Date(2026, time.March, 10, 19, 30, 0, 0, time.UTC), at)
	assert.Equal(t, time.UTC, at.Location())
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", TimeOfDay(8*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "21:30", TimeOfDay(21*60+30).String())
}

func TestTimeOfDayMarshalJSON(t *testing.T) {
	b, err := json.Marshal([]TimeOfDay{510, 0})
	require.NoError(t, err)
	assert.JSONEq(t, `["08:30","00:00"]`, string(b))
}
