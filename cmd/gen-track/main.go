// Command gen-track draws a procedural oval track image that the waypoint
// tools can load.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

var (
	outFlag    = flag.String("out", "assets/track.png", "output PNG path")
	widthFlag  = flag.Int("width", 800, "image width in pixels")
	heightFlag = flag.Int("height", 600, "image height in pixels")

	// radiusXFlag and radiusYFlag give the outer edge of the oval.
	radiusXFlag = flag.Float64("rx", 300, "outer horizontal radius")
	radiusYFlag = flag.Float64("ry", 200, "outer vertical radius")
	innerFlag   = flag.Float64("inner", 0.6, "inner edge as a fraction of the outer ellipse equation (0-1)")

	// gapStartFlag and gapEndFlag cut a hole in the track, in degrees
	// clockwise from the right-hand side of the image.
	gapStartFlag = flag.Float64("gap-start", 0, "start angle of a missing section (degrees)")
	gapEndFlag   = flag.Float64("gap-end", 0, "end angle of a missing section (degrees)")
	gravelFlag   = flag.Bool("gravel", true, "paint a gravel runoff patch in the top-left corner")
)

var (
	tarmac = color.RGBA{255, 255, 255, 255}
	wall   = color.RGBA{0, 0, 0, 255}
	start  = color.RGBA{255, 0, 0, 255}
	gravel = color.RGBA{0, 255, 0, 255}
)

func main() {
	flag.Parse()

	img := drawOval(ovalShape{
		Width:    *widthFlag,
		Height:   *heightFlag,
		RadiusX:  *radiusXFlag,
		RadiusY:  *radiusYFlag,
		Inner:    *innerFlag,
		GapStart: *gapStartFlag * math.Pi / 180,
		GapEnd:   *gapEndFlag * math.Pi / 180,
		Gravel:   *gravelFlag,
	})

	if err := os.MkdirAll(filepath.Dir(*outFlag), 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(*outFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	log.WithField("path", *outFlag).Info("track written")
}

type ovalShape struct {
	Width, Height    int
	RadiusX, RadiusY float64
	Inner            float64
	GapStart, GapEnd float64 // Radians
	Gravel           bool
}

func (s ovalShape) inGap(angle float64) bool {
	if s.GapEnd <= s.GapStart {
		return false
	}
	a := math.Mod(angle-s.GapStart, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a < s.GapEnd-s.GapStart
}

func drawOval(s ovalShape) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	centerX, centerY := float64(s.Width)/2, float64(s.Height)/2

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			dx := float64(x) + 0.5 - centerX
			dy := float64(y) + 0.5 - centerY

			// Ellipse equation: (x/a)^2 + (y/b)^2 = 1
			dist := (dx*dx)/(s.RadiusX*s.RadiusX) + (dy*dy)/(s.RadiusY*s.RadiusY)

			// If inside the outer edge and outside the inner edge
			if dist <= 1.0 && dist >= s.Inner && !s.inGap(math.Atan2(dy, dx)) {
				img.Set(x, y, tarmac)
			} else {
				img.Set(x, y, wall)
			}
		}
	}

	// Draw Start Line at the top of the oval
	top := int(centerY - s.RadiusY)
	for y := top; y < int(centerY); y++ {
		for x := int(centerX) - 3; x < int(centerX)+3; x++ {
			if img.RGBAAt(x, y) == tarmac {
				img.Set(x, y, start)
			}
		}
	}

	// Draw Gravel outside the first turn
	if s.Gravel {
		for y := 0; y < s.Height/6; y++ {
			for x := 0; x < s.Width/8; x++ {
				img.Set(x, y, gravel)
			}
		}
	}
	return img
}
