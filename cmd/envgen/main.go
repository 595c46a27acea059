package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"envgen/internal/fixture"
	"envgen/internal/logging"
	"envgen/internal/sink"
)

/* envgen writes a synthetic environmental-telemetry fixture: users own
devices, devices emit events, and every event carries temperature,
humidity and pressure readings. Defaults reproduce the reference
4-user × 2-device × 10-event dataset. */

var (
	output      = flag.String("output", "example_environments.csv", "Output artifact path")
	format      = flag.String("format", "csv", "Output format: "+strings.Join(sink.Formats(), "|"))
	seed        = flag.Uint64("seed", 0, "Random seed (0 derives one from the clock)")
	profilePath = flag.String("profile", "", "YAML profile overriding the built-in generation constants")

	users   = flag.Int("users", 0, "Override the profile's user count")
	devices = flag.Int("devices", 0, "Override the profile's devices per user")
	events  = flag.Int("events", 0, "Override the profile's events per device")

	influxURL    = flag.String("influx-url", "", "Also seed an InfluxDB instance at this URL with the generated events")
	influxToken  = flag.String("influx-token", "", "InfluxDB API token")
	influxOrg    = flag.String("influx-org", "", "InfluxDB organization")
	influxBucket = flag.String("influx-bucket", "environment", "InfluxDB bucket")

	quiet = flag.Bool("quiet", false, "Only log warnings and errors")
)

func main() {
	flag.Parse()

	logger, err := logging.New(*quiet)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	profile := fixture.DefaultProfile()
	if *profilePath != "" {
		var err error
		if profile, err = fixture.LoadProfile(*profilePath); err != nil {
			return err
		}
	}
	if *users > 0 {
		profile.Users = *users
	}
	if *devices > 0 {
		profile.DevicesPerUser = *devices
	}
	if *events > 0 {
		profile.EventsPerDevice = *events
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = uint64(time.Now().UnixNano())
	}
	gen, err := fixture.NewSeeded(profile, runSeed, time.Now)
	if err != nil {
		return err
	}

	out, err := sink.Get(*format, *output)
	if err != nil {
		return err
	}
	sinks := sink.Multi{out}
	if *influxURL != "" {
		logger.Info("seeding influxdb",
			zap.String("url", *influxURL),
			zap.String("org", *influxOrg),
			zap.String("bucket", *influxBucket))
		sinks = append(sinks, sink.NewInfluxSeeder(context.Background(), *influxURL, *influxToken, *influxOrg, *influxBucket))
	}

	logger.Info("generating fixture",
		zap.String("path", *output),
		zap.String("format", *format),
		zap.Uint64("seed", runSeed),
		zap.Int("rows", profile.Rows()))

	var bar *progressbar.ProgressBar
	if *quiet {
		bar = progressbar.DefaultSilent(int64(profile.Rows()))
	} else {
		bar = progressbar.Default(int64(profile.Rows()), "generating")
	}

	writeErr := sinks.WriteHeader(fixture.Header)
	if writeErr == nil {
		writeErr = gen.ForEach(func(rec fixture.Record) error {
			if err := sinks.WriteRecord(rec); err != nil {
				return err
			}
			return bar.Add(1)
		})
	}
	closeErr := sinks.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return closeErr
	}

	if info, err := os.Stat(*output); err == nil {
		logger.Info("fixture written",
			zap.String("path", *output),
			zap.Int("rows", profile.Rows()),
			zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}
	return nil
}
