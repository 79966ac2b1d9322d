//go:build gocv

// Command debug-mesh cleans up a photographed or hand-drawn track so that
// it loads as a track image: white tarmac on black walls.
package main

import (
	"flag"
	"image"

	log "github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	inFlag        = flag.String("in", "input.jpg", "source image")
	outFlag       = flag.String("out", "assets/track.png", "cleaned track image")
	edgesFlag     = flag.String("edges", "", "optional path for a Canny edge dump")
	thresholdFlag = flag.Float64("threshold", 127, "grayscale level separating tarmac from walls")
	invertFlag    = flag.Bool("invert", false, "source draws the track dark on a light background")
)

func main() {
	flag.Parse()

	// 1. Load the image
	img := gocv.IMRead(*inFlag, gocv.IMReadColor)
	if img.Empty() {
		log.WithField("path", *inFlag).Fatal("cannot read image")
	}
	defer img.Close()

	// 2. Convert to grayscale and smooth out sensor noise
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	gocv.GaussianBlur(gray, &gray, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	// 3. Binarize
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, float32(*thresholdFlag), 255, gocv.ThresholdBinary)
	if *invertFlag {
		gocv.BitwiseNot(mask, &mask)
	}

	if *edgesFlag != "" {
		// Weak edges connected to strong edges are kept
		edges := gocv.NewMat()
		defer edges.Close()
		gocv.Canny(gray, &edges, 50, 150)
		if ok := gocv.IMWrite(*edgesFlag, edges); !ok {
			log.WithField("path", *edgesFlag).Error("cannot write edge image")
		}
	}

	if ok := gocv.IMWrite(*outFlag, mask); !ok {
		log.WithField("path", *outFlag).Fatal("cannot write track image")
	}
	log.WithFields(log.Fields{
		"in":        *inFlag,
		"out":       *outFlag,
		"threshold": *thresholdFlag,
	}).Info("track image cleaned")
}
