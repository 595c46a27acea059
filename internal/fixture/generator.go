package fixture

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Generator produces a profile's event records from an injected random
// source and clock. Two generators built with the same profile, seed and
// clock emit identical record sequences.
type Generator struct {
	profile Profile
	rng     *rand.Rand
	now     func() time.Time

	// Region keys sorted once at construction; picking from the map
	// directly would make seeded runs order-dependent.
	regions []string
}

// NewGenerator builds a generator over an explicit random source. now may
// be nil, in which case the wall clock is used.
func NewGenerator(p Profile, rng *rand.Rand, now func() time.Time) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	regions := make([]string, 0, len(p.Regions))
	for region := range p.Regions {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	return &Generator{profile: p, rng: rng, now: now, regions: regions}, nil
}

// NewSeeded builds a generator whose entire output, identifiers
// included, is a pure function of profile, seed and clock.
func NewSeeded(p Profile, seed uint64, now func() time.Time) (*Generator, error) {
	return NewGenerator(p, rand.New(rand.NewPCG(seed, seed)), now)
}

// ForEach walks the full user → device → event cardinality in order,
// invoking fn once per assembled record. A fresh identifier is drawn per
// entity; device identity and geo location are drawn once per device and
// shared by all of its events. Stops at the first fn error.
func (g *Generator) ForEach(fn func(Record) error) error {
	p := g.profile
	for u := 0; u < p.Users; u++ {
		userID := g.id()
		for d := 0; d < p.DevicesPerUser; d++ {
			deviceID := g.id()
			geo := g.geoLocation()
			for e := 0; e < p.EventsPerDevice; e++ {
				eventID := g.id()
				epochS := g.eventEpoch()
				rec := Record{
					UserID:      userID,
					DeviceID:    deviceID,
					EventID:     eventID,
					GeoLocation: geo,
					EpochS:      epochS,
					Expiry:      g.expiry(epochS),
					TempC:       g.tempC(),
					HumidityPct: int(g.intIn(p.Humidity)),
					PressurePa:  int(g.intIn(p.Pressure)),
				}
				if err := fn(rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// randReader adapts the generator's random source to io.Reader so uuid
// tokens come from the same seedable stream as every other draw.
type randReader struct{ rng *rand.Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.UintN(256))
	}
	return len(p), nil
}

func (g *Generator) id() string {
	return uuid.Must(uuid.NewRandomFromReader(randReader{g.rng})).String()
}

// geoLocation picks a uniform region, then a uniform city within it, and
// joins the constant planet and country labels with dashes.
func (g *Generator) geoLocation() string {
	region := g.regions[g.rng.IntN(len(g.regions))]
	cities := g.profile.Regions[region]
	city := cities[g.rng.IntN(len(cities))]
	return fmt.Sprintf("%s-%s-%s-%s", g.profile.Planet, g.profile.Country, region, city)
}

// eventEpoch places the event a uniform offset into the recent past.
func (g *Generator) eventEpoch() int64 {
	return g.now().Unix() - g.intIn(g.profile.EpochOffset)
}

// expiry returns the 0 sentinel for all but one in ExpiryOneIn draws;
// otherwise the event timestamp plus a uniform positive offset, so a
// nonzero expiry is always strictly later than the event.
func (g *Generator) expiry(epochS int64) int64 {
	if g.rng.IntN(g.profile.ExpiryOneIn) != 0 {
		return 0
	}
	return epochS + g.intIn(g.profile.ExpiryOffset)
}

// tempC draws uniformly over [0, TempMaxC] quantized to two decimals.
func (g *Generator) tempC() float64 {
	return math.Round(g.rng.Float64()*g.profile.TempMaxC*100) / 100
}

func (g *Generator) intIn(b Bound) int64 {
	return b.Min + g.rng.Int64N(b.Max-b.Min+1)
}
