package fixture

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func collect(t *testing.T, g *Generator) []Record {
	t.Helper()
	var records []Record
	require.NoError(t, g.ForEach(func(rec Record) error {
		records = append(records, rec)
		return nil
	}))
	return records
}

func TestGeneratorDeterministic(t *testing.T) {
	profile := DefaultProfile()

	first, err := NewSeeded(profile, 42, fixedClock)
	require.NoError(t, err)
	second, err := NewSeeded(profile, 42, fixedClock)
	require.NoError(t, err)

	require.Equal(t, collect(t, first), collect(t, second),
		"same profile, seed and clock must emit identical records")
}

func TestGeneratorSeedChangesOutput(t *testing.T) {
	profile := DefaultProfile()

	first, err := NewSeeded(profile, 1, fixedClock)
	require.NoError(t, err)
	second, err := NewSeeded(profile, 2, fixedClock)
	require.NoError(t, err)

	require.NotEqual(t, collect(t, first), collect(t, second))
}

func TestGeneratorCardinality(t *testing.T) {
	profile := DefaultProfile()
	gen, err := NewSeeded(profile, 7, fixedClock)
	require.NoError(t, err)

	records := collect(t, gen)
	require.Len(t, records, 80)

	devicesByUser := map[string]map[string]int{}
	for _, rec := range records {
		if devicesByUser[rec.UserID] == nil {
			devicesByUser[rec.UserID] = map[string]int{}
		}
		devicesByUser[rec.UserID][rec.DeviceID]++
	}

	require.Len(t, devicesByUser, 4, "expected 4 distinct users")
	for user, devices := range devicesByUser {
		assert.Len(t, devices, 2, "user %s should own 2 devices", user)
		for device, count := range devices {
			assert.Equal(t, 10, count, "device %s should emit 10 events", device)
		}
	}
}

func TestGeneratorEventIDsUnique(t *testing.T) {
	gen, err := NewSeeded(DefaultProfile(), 7, fixedClock)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, rec := range collect(t, gen) {
		require.False(t, seen[rec.EventID], "duplicate eventId %s", rec.EventID)
		seen[rec.EventID] = true
	}
}

func TestGeneratorGeoCoherentPerDevice(t *testing.T) {
	profile := DefaultProfile()
	gen, err := NewSeeded(profile, 11, fixedClock)
	require.NoError(t, err)

	geoByDevice := map[string]string{}
	for _, rec := range collect(t, gen) {
		if prev, ok := geoByDevice[rec.DeviceID]; ok {
			assert.Equal(t, prev, rec.GeoLocation, "device %s moved between events", rec.DeviceID)
			continue
		}
		geoByDevice[rec.DeviceID] = rec.GeoLocation

		// Earth-US-<region>-<city>, city drawn from that region's list
		parts := regexp.MustCompile(`^Earth-US-([A-Z]{2})-(.+)$`).FindStringSubmatch(rec.GeoLocation)
		require.NotNil(t, parts, "unexpected geoLocation %q", rec.GeoLocation)
		assert.Contains(t, profile.Regions[parts[1]], parts[2])
	}
}

func TestGeneratorTimestampsAndExpiry(t *testing.T) {
	profile := DefaultProfile()
	gen, err := NewSeeded(profile, 13, fixedClock)
	require.NoError(t, err)

	now := fixedClock().Unix()
	sawZero, sawReal := false, false
	for _, rec := range collect(t, gen) {
		assert.GreaterOrEqual(t, rec.EpochS, now-profile.EpochOffset.Max)
		assert.LessOrEqual(t, rec.EpochS, now-profile.EpochOffset.Min)

		if rec.Expiry == 0 {
			sawZero = true
			continue
		}
		sawReal = true
		assert.Greater(t, rec.Expiry, rec.EpochS)
		assert.LessOrEqual(t, rec.Expiry, rec.EpochS+profile.ExpiryOffset.Max)
	}
	// 80 draws at 1-in-4 odds make both outcomes certain in practice
	assert.True(t, sawZero, "expected some no-expiry events")
	assert.True(t, sawReal, "expected some expiring events")
}

func TestGeneratorMeasurementBounds(t *testing.T) {
	profile := DefaultProfile()
	gen, err := NewSeeded(profile, 17, fixedClock)
	require.NoError(t, err)

	twoDecimals := regexp.MustCompile(`^\d+\.\d{2}$`)
	for _, rec := range collect(t, gen) {
		assert.GreaterOrEqual(t, rec.TempC, 0.0)
		assert.LessOrEqual(t, rec.TempC, profile.TempMaxC)
		assert.Regexp(t, twoDecimals, rec.Row()[6])

		assert.GreaterOrEqual(t, int64(rec.HumidityPct), profile.Humidity.Min)
		assert.LessOrEqual(t, int64(rec.HumidityPct), profile.Humidity.Max)
		assert.GreaterOrEqual(t, int64(rec.PressurePa), profile.Pressure.Min)
		assert.LessOrEqual(t, int64(rec.PressurePa), profile.Pressure.Max)
	}
}

func TestGeneratorStopsOnCallbackError(t *testing.T) {
	gen, err := NewSeeded(DefaultProfile(), 19, fixedClock)
	require.NoError(t, err)

	calls := 0
	err = gen.ForEach(func(Record) error {
		calls++
		if calls == 3 {
			return assert.AnError
		}
		return nil
	})
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, 3, calls)
}

func TestGeneratorRejectsInvalidProfile(t *testing.T) {
	profile := DefaultProfile()
	profile.Users = 0
	_, err := NewSeeded(profile, 1, fixedClock)
	require.Error(t, err)
}
