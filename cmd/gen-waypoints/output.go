package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"waypoint-sampler/internal/sampler"
	"waypoint-sampler/internal/track"
)

// waypointDoc is the YAML form of one waypoint.
type waypointDoc struct {
	Index       int        `yaml:"index"`
	Angle       float64    `yaml:"angle"`
	Position    [3]float64 `yaml:"position,flow"`
	Forward     [3]float64 `yaml:"forward,flow"`
	Orientation [4]float64 `yaml:"orientation,flow"` // x, y, z, w
	Width       float64    `yaml:"width"`
	Distance    float64    `yaml:"distance"`
}

// trackDoc is the YAML document written for one track.
type trackDoc struct {
	Track       string        `yaml:"track"`
	Requested   int           `yaml:"requested"`
	Created     int           `yaml:"created"`
	Length      float64       `yaml:"length"`
	Fingerprint string        `yaml:"fingerprint"`
	Waypoints   []waypointDoc `yaml:"waypoints"`
}

// newTrackDoc flattens a run and its loop into a trackDoc.
func newTrackDoc(name string, res sampler.Result, loop *track.Path) trackDoc {
	doc := trackDoc{
		Track:       name,
		Requested:   res.Requested,
		Created:     res.Created(),
		Length:      loop.Length(),
		Fingerprint: fmt.Sprintf("%016x", loop.Fingerprint()),
		Waypoints:   make([]waypointDoc, 0, loop.Len()),
	}
	for i, wp := range loop.Waypoints {
		q := wp.Orientation
		doc.Waypoints = append(doc.Waypoints, waypointDoc{
			Index:       wp.Index,
			Angle:       wp.Angle,
			Position:    wp.Position,
			Forward:     wp.Forward,
			Orientation: [4]float64{q.V.X(), q.V.Y(), q.V.Z(), q.W},
			Width:       wp.Width,
			Distance:    loop.Distances[i],
		})
	}
	return doc
}

// writeDocs writes one YAML document per track.
func writeDocs(w io.Writer, docs []trackDoc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return enc.Close()
}
