//go:build !gocv

package main

import log "github.com/sirupsen/logrus"

func main() {
	log.Fatal("debug-mesh needs OpenCV: rebuild with -tags gocv")
}
