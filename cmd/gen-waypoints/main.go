// Command gen-waypoints scans track images and prints the waypoint loop of
// each one as YAML.
//
//	gen-waypoints [-config file] [-count N] [-samples N] [-ray-height H] [track.png ...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"waypoint-sampler/internal/config"
	"waypoint-sampler/internal/sampler"
	"waypoint-sampler/internal/track"
)

var (
	// configFlag points at an optional YAML settings file.
	configFlag = flag.String("config", "", "YAML settings file")

	countFlag     = flag.Int("count", sampler.DefaultCount, "number of waypoints to request")
	samplesFlag   = flag.Int("samples", sampler.DefaultRadialSamples, "radial samples per angle (scan quality)")
	rayHeightFlag = flag.Float64("ray-height", sampler.DefaultRayHeight, "probe start height above the track; probes reach twice as far")
	marginFlag    = flag.Float64("margin", sampler.DefaultMargin, "added to the track extent to get the scan radius")

	// outFlag redirects the YAML output. Empty means stdout.
	outFlag      = flag.String("out", "", "write waypoints to this file instead of stdout")
	logLevelFlag = flag.String("log-level", "", "override the configured log level")
	jobsFlag     = flag.Int("jobs", runtime.NumCPU(), "tracks processed in parallel")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatal(err)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{cfg.Track.Image}
	}

	docs, err := generateAll(paths, cfg, *jobsFlag)
	if err != nil {
		var pe *sampler.PreconditionError
		if errors.As(err, &pe) {
			log.WithField("field", pe.Field).Fatal(err)
		}
		log.Fatal(err)
	}

	out := io.Writer(os.Stdout)
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := writeDocs(out, docs); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			cfg.Sampler.Count = *countFlag
		case "samples":
			cfg.Sampler.RadialSamples = *samplesFlag
		case "ray-height":
			cfg.Sampler.RayHeight = *rayHeightFlag
		case "margin":
			cfg.Sampler.Margin = *marginFlag
		case "log-level":
			cfg.Log.Level = *logLevelFlag
		}
	})
	return cfg, cfg.Validate()
}

// generateAll samples every track concurrently. Results keep the order of
// paths.
func generateAll(paths []string, cfg config.Config, jobs int) ([]trackDoc, error) {
	docs := make([]trackDoc, len(paths))

	var g errgroup.Group
	g.SetLimit(max(1, jobs))
	for i, path := range paths {
		g.Go(func() error {
			doc, err := generate(path, cfg)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func generate(path string, cfg config.Config) (trackDoc, error) {
	t, err := track.LoadTrack(path, cfg.SurfaceOptions())
	if err != nil {
		return trackDoc{}, err
	}

	s := sampler.New(cfg.Sampler)
	s.Log = log.WithField("track", path)

	var loop track.Path
	res, err := s.GenerateInto(t.Surface, t.Scene, &loop)
	if err != nil {
		return trackDoc{}, fmt.Errorf("%s: %w", path, err)
	}
	if !res.Complete() {
		log.WithField("track", path).Warnf("%d angles produced no waypoint", res.Requested-res.Created())
	}
	return newTrackDoc(path, res, &loop), nil
}
