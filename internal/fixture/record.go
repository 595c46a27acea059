package fixture

import "strconv"

// Header is the column order of every emitted fixture. Downstream
// harnesses index columns by position, so this order is load-bearing.
var Header = []string{
	"userId",
	"deviceId",
	"eventId",
	"geoLocation",
	"epochS",
	"expiry",
	"tempC",
	"humidityPct",
	"pressurePa",
}

// Record is one synthetic telemetry event: a user's device reporting an
// environmental reading at a point in the recent past.
type Record struct {
	UserID      string  `json:"userId"`
	DeviceID    string  `json:"deviceId"`
	EventID     string  `json:"eventId"`
	GeoLocation string  `json:"geoLocation"`
	EpochS      int64   `json:"epochS"`
	Expiry      int64   `json:"expiry"` // 0 means the record never expires
	TempC       float64 `json:"tempC"`
	HumidityPct int     `json:"humidityPct"`
	PressurePa  int     `json:"pressurePa"`
}

// Row renders the record as text cells in Header order. TempC always
// carries two fractional digits.
func (r Record) Row() []string {
	return []string{
		r.UserID,
		r.DeviceID,
		r.EventID,
		r.GeoLocation,
		strconv.FormatInt(r.EpochS, 10),
		strconv.FormatInt(r.Expiry, 10),
		strconv.FormatFloat(r.TempC, 'f', 2, 64),
		strconv.Itoa(r.HumidityPct),
		strconv.Itoa(r.PressurePa),
	}
}
