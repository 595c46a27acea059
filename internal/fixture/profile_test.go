package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()
	require.NoError(t, profile.Validate())
	assert.Equal(t, 80, profile.Rows())
	assert.Len(t, profile.Regions, 3)
}

func TestProfileValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"no users", func(p *Profile) { p.Users = 0 }},
		{"no devices", func(p *Profile) { p.DevicesPerUser = 0 }},
		{"no events", func(p *Profile) { p.EventsPerDevice = -1 }},
		{"empty regions", func(p *Profile) { p.Regions = nil }},
		{"region without cities", func(p *Profile) { p.Regions["NV"] = nil }},
		{"inverted epoch bound", func(p *Profile) { p.EpochOffset = Bound{Min: 10, Max: 1} }},
		{"zero expiry offset", func(p *Profile) { p.ExpiryOffset = Bound{Min: 0, Max: 600} }},
		{"zero expiry weight", func(p *Profile) { p.ExpiryOneIn = 0 }},
		{"negative temp max", func(p *Profile) { p.TempMaxC = -1 }},
		{"inverted pressure bound", func(p *Profile) { p.Pressure = Bound{Min: 105000, Max: 100000} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := DefaultProfile()
			tc.mutate(&profile)
			require.Error(t, profile.Validate())
		})
	}
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
users: 2
eventsPerDevice: 3
tempMaxC: 45
regions:
  WA: [Seattle, Spokane]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	profile, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.Users)
	assert.Equal(t, 3, profile.EventsPerDevice)
	assert.Equal(t, 45.0, profile.TempMaxC)
	assert.Equal(t, map[string][]string{"WA": {"Seattle", "Spokane"}}, profile.Regions)

	// Untouched fields keep their defaults
	assert.Equal(t, 2, profile.DevicesPerUser)
	assert.Equal(t, Bound{Min: 100, Max: 10000}, profile.EpochOffset)
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("users: -3"), 0644))
	_, err = LoadProfile(bad)
	require.Error(t, err)
}
