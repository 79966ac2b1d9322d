package track

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	log "github.com/sirupsen/logrus"

	"waypoint-sampler/internal/geom"
)

// SurfaceOptions places the image grid in world space.
type SurfaceOptions struct {
	Scale     float64 // World units per pixel
	Elevation float64 // Height of the track plane
}

// DefaultSurfaceOptions maps one pixel to one world unit at height zero.
func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{Scale: 1}
}

// Track bundles a track image with the surfaces built from it.
type Track struct {
	Name    string
	Grid    *Grid
	Surface *geom.Mesh // Drivable cells
	Runoff  *geom.Mesh // Gravel cells
	Scene   *geom.Scene
}

// LoadTrackFromImage loads an image and converts it to a Grid.
func LoadTrackFromImage(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return GridFromImage(img), nil
}

// GridFromImage classifies every pixel of img.
func GridFromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	grid := NewGrid(bounds.Dx(), bounds.Dy())

	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			grid.Cells[x][y] = Cell{Type: ColorToCellType(c)}
		}
	}
	return grid
}

// LoadTrack reads a track image and builds its surfaces.
func LoadTrack(path string, opts SurfaceOptions) (*Track, error) {
	grid, err := LoadTrackFromImage(path)
	if err != nil {
		return nil, err
	}
	t, err := NewTrack(path, grid, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// NewTrack builds the drivable and runoff surfaces of grid and registers both
// in one scene, so probes that land on runoff are attributed to it.
func NewTrack(name string, grid *Grid, opts SurfaceOptions) (*Track, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("track scale must be positive, got %v", opts.Scale)
	}
	grid.Scale = opts.Scale

	surface := BuildSurface(name, grid, opts, CellType.Drivable)
	if len(surface.Triangles()) == 0 {
		return nil, fmt.Errorf("no drivable cells in %dx%d image", grid.Width, grid.Height)
	}
	runoff := BuildSurface(name+"/runoff", grid, opts, func(t CellType) bool { return t == CellGravel })

	log.WithFields(log.Fields{
		"track":     name,
		"size":      fmt.Sprintf("%dx%d", grid.Width, grid.Height),
		"triangles": len(surface.Triangles()),
		"runoff":    len(runoff.Triangles()),
	}).Debug("built track surfaces")

	return &Track{
		Name:    name,
		Grid:    grid,
		Surface: surface,
		Runoff:  runoff,
		Scene:   geom.NewScene(surface, runoff),
	}, nil
}

// BuildSurface turns the cells selected by keep into a flat mesh. Each row is
// scanned for runs of selected cells and every run becomes one quad, so the
// mesh stays small for large images. Pixel (x, y) covers
// [x, x+1) x [y, y+1) scaled onto world X and Z.
func BuildSurface(name string, grid *Grid, opts SurfaceOptions, keep func(CellType) bool) *geom.Mesh {
	s := opts.Scale
	var tris []geom.Triangle

	for y := 0; y < grid.Height; y++ {
		x := 0
		for x < grid.Width {
			if !keep(grid.Cells[x][y].Type) {
				x++
				continue
			}
			start := x
			for x < grid.Width && keep(grid.Cells[x][y].Type) {
				x++
			}
			quad := geom.NewQuad(float64(start)*s, float64(y)*s, float64(x)*s, float64(y+1)*s, opts.Elevation)
			tris = append(tris, quad[:]...)
		}
	}
	return geom.NewMesh(name, tris)
}

// WorldToPixel maps a world position back onto grid coordinates.
func (t *Track) WorldToPixel(p mgl64.Vec3) (float64, float64) {
	return p.X() / t.Grid.Scale, p.Z() / t.Grid.Scale
}
