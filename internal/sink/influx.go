package sink

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"envgen/internal/fixture"
)

// InfluxSeeder writes generated records into a live InfluxDB bucket so
// integration environments can be seeded with the same fixture the file
// sinks emit. Each record becomes one "environment" point tagged with
// its identifiers, timestamped at the event's epoch second.
type InfluxSeeder struct {
	ctx    context.Context
	client influxdb2.Client
	write  api.WriteAPIBlocking
}

// NewInfluxSeeder connects to an InfluxDB instance. ctx bounds every
// point write issued through the seeder.
func NewInfluxSeeder(ctx context.Context, url, token, org, bucket string) *InfluxSeeder {
	client := influxdb2.NewClient(url, token)
	return &InfluxSeeder{
		ctx:    ctx,
		client: client,
		write:  client.WriteAPIBlocking(org, bucket),
	}
}

// WriteHeader is a no-op; the schema is carried by the points themselves.
func (s *InfluxSeeder) WriteHeader([]string) error { return nil }

func (s *InfluxSeeder) WriteRecord(rec fixture.Record) error {
	p := influxdb2.NewPoint(
		"environment",
		map[string]string{
			"userId":      rec.UserID,
			"deviceId":    rec.DeviceID,
			"eventId":     rec.EventID,
			"geoLocation": rec.GeoLocation,
		},
		map[string]interface{}{
			"tempC":       rec.TempC,
			"humidityPct": rec.HumidityPct,
			"pressurePa":  rec.PressurePa,
			"expiry":      rec.Expiry,
		},
		time.Unix(rec.EpochS, 0),
	)
	if err := s.write.WritePoint(s.ctx, p); err != nil {
		return fmt.Errorf("error writing to InfluxDB: %w", err)
	}
	return nil
}

func (s *InfluxSeeder) Close() error {
	s.client.Close()
	return nil
}
