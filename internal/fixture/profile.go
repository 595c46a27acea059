package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bound is an inclusive integer range for a uniform draw.
type Bound struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

func (b Bound) valid() bool { return b.Min <= b.Max }

// Profile holds every tunable constant of a generation run: the
// user/device/event cardinality, the sampling ranges, and the geography
// vocabulary. The zero value is unusable; start from DefaultProfile and
// override.
type Profile struct {
	Users           int `yaml:"users"`
	DevicesPerUser  int `yaml:"devicesPerUser"`
	EventsPerDevice int `yaml:"eventsPerDevice"`

	Planet  string              `yaml:"planet"`
	Country string              `yaml:"country"`
	Regions map[string][]string `yaml:"regions"`

	// EpochOffset is subtracted from the clock to place events in the
	// recent past. ExpiryOffset is added to an event's timestamp when the
	// expiry draw produces a real expiry.
	EpochOffset  Bound `yaml:"epochOffset"`
	ExpiryOffset Bound `yaml:"expiryOffset"`

	// ExpiryOneIn weights the expiry draw: one event in ExpiryOneIn gets a
	// real expiry, the rest get the 0 no-expiry sentinel.
	ExpiryOneIn int `yaml:"expiryOneIn"`

	TempMaxC float64 `yaml:"tempMaxC"`
	Humidity Bound   `yaml:"humidity"`
	Pressure Bound   `yaml:"pressure"`
}

// DefaultProfile returns the reference fixture shape: 4 users with 2
// devices each reporting 10 events, US geography, plausible sea-level
// atmosphere.
func DefaultProfile() Profile {
	return Profile{
		Users:           4,
		DevicesPerUser:  2,
		EventsPerDevice: 10,
		Planet:          "Earth",
		Country:         "US",
		Regions: map[string][]string{
			"TX": {"Austin", "San Antonio"},
			"CA": {"Berkely", "Las Angeles", "San Diego"},
			"VT": {"Burlington", "St. Albans"},
		},
		EpochOffset:  Bound{Min: 100, Max: 10000},
		ExpiryOffset: Bound{Min: 60, Max: 600},
		ExpiryOneIn:  4,
		TempMaxC:     120,
		Humidity:     Bound{Min: 0, Max: 100},
		Pressure:     Bound{Min: 100000, Max: 105000},
	}
}

// Rows is the number of data rows a run of this profile emits.
func (p Profile) Rows() int {
	return p.Users * p.DevicesPerUser * p.EventsPerDevice
}

// Validate rejects profiles that would make a generator draw from an
// empty or inverted range.
func (p Profile) Validate() error {
	if p.Users < 1 || p.DevicesPerUser < 1 || p.EventsPerDevice < 1 {
		return fmt.Errorf("cardinality must be at least 1 at every level (users=%d devices=%d events=%d)",
			p.Users, p.DevicesPerUser, p.EventsPerDevice)
	}
	if len(p.Regions) == 0 {
		return fmt.Errorf("regions table is empty")
	}
	for region, cities := range p.Regions {
		if len(cities) == 0 {
			return fmt.Errorf("region %q has no cities", region)
		}
	}
	if !p.EpochOffset.valid() || p.EpochOffset.Min < 0 {
		return fmt.Errorf("invalid epoch offset bound [%d,%d]", p.EpochOffset.Min, p.EpochOffset.Max)
	}
	if !p.ExpiryOffset.valid() || p.ExpiryOffset.Min < 1 {
		return fmt.Errorf("invalid expiry offset bound [%d,%d]", p.ExpiryOffset.Min, p.ExpiryOffset.Max)
	}
	if p.ExpiryOneIn < 1 {
		return fmt.Errorf("expiryOneIn must be at least 1, got %d", p.ExpiryOneIn)
	}
	if p.TempMaxC <= 0 {
		return fmt.Errorf("tempMaxC must be positive, got %v", p.TempMaxC)
	}
	if !p.Humidity.valid() || !p.Pressure.valid() {
		return fmt.Errorf("invalid measurement bounds (humidity [%d,%d], pressure [%d,%d])",
			p.Humidity.Min, p.Humidity.Max, p.Pressure.Min, p.Pressure.Max)
	}
	return nil
}

// LoadProfile reads a YAML profile from path. Fields absent from the
// file keep their DefaultProfile values.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	b, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("cannot load profile: %w", err)
	}

	// yaml merges into a pre-populated map, which would mix the file's
	// regions with the defaults; a region table in the file replaces the
	// table wholesale.
	var probe struct {
		Regions map[string][]string `yaml:"regions"`
	}
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return Profile{}, fmt.Errorf("cannot parse profile %s: %w", path, err)
	}
	if probe.Regions != nil {
		p.Regions = nil
	}

	if err := yaml.Unmarshal(b, &p); err != nil {
		return Profile{}, fmt.Errorf("cannot parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}
