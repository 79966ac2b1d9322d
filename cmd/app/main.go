package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"

	"waypoint-sampler/internal/common"
	"waypoint-sampler/internal/config"
	"waypoint-sampler/internal/follow"
	"waypoint-sampler/internal/sampler"
	"waypoint-sampler/internal/track"
)

// ============================================================================
// CONFIGURATION - Adjust these values to customize the viewer
// ============================================================================

// Render window dimensions
const (
	WindowWidth  = 1200
	WindowHeight = 800
)

// Simulation settings
const (
	FastSpeedMultiplier   = 20   // Ticks per frame in fast mode
	CarSpawnWaypointIndex = 0    // Which waypoint to spawn the car at
	ViewScaleMargin       = 0.95 // Margin for fitting track in window (0.95 = 5% padding)
	SplineStep            = 2.0  // World units between centerline samples
	CountStep             = 10   // Waypoints added/removed per key press
)

// Track surface colors
var (
	ColorTarmac = color.RGBA{80, 80, 80, 255}
	ColorGravel = color.RGBA{40, 70, 40, 255}
	ColorWall   = color.RGBA{10, 10, 10, 255}
	ColorStart  = color.RGBA{255, 0, 0, 255}
	ColorFinish = color.RGBA{0, 0, 255, 255}
	ColorDir    = color.RGBA{255, 255, 0, 255}
)

// Visualization colors
var (
	ColorBand       = color.RGBA{50, 155, 50, 90}   // Hit band across the track
	ColorWaypoint   = color.RGBA{0, 200, 255, 255}  // Cyan
	ColorCenterline = color.RGBA{255, 0, 255, 200}  // Magenta
	ColorCar        = color.RGBA{255, 0, 0, 255}    // Red
	ColorCarHeading = color.RGBA{255, 255, 0, 255}  // Yellow
	ColorTarget     = color.RGBA{255, 255, 255, 160} // Line to the target waypoint
)

// ============================================================================

var (
	configFlag = flag.String("config", "", "YAML settings file")
	trackFlag  = flag.String("track", "", "track image, overrides the config file")
)

type Game struct {
	Track      *track.Track
	Path       *track.Path
	Centerline []common.Vec2
	TrackImage *ebiten.Image
	Car        *follow.Car
	Params     sampler.Params
	Result     sampler.Result
	Fast       bool

	// Rendering Scale
	ViewScale   float32
	ViewOffsetX float32
	ViewOffsetY float32
}

// Regenerate reruns the sampler into the existing path and respawns the car.
func (g *Game) Regenerate() error {
	res, err := sampler.New(g.Params).GenerateInto(g.Track.Surface, g.Track.Scene, g.Path)
	if err != nil {
		return err
	}
	g.Result = res

	g.Centerline = g.Centerline[:0]
	for _, p := range g.Path.Spline(SplineStep) {
		g.Centerline = append(g.Centerline, common.FromXZ(p))
	}
	g.Car = follow.NewCar(g.Path, CarSpawnWaypointIndex, follow.DefaultConfig().Scaled(g.Track.Grid.Scale))

	log.WithField("fingerprint", fmt.Sprintf("%016x", g.Path.Fingerprint())).
		Debug("waypoints regenerated")
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Fast = !g.Fast
	}

	regen := inpututil.IsKeyJustPressed(ebiten.KeyR)
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.Params.Count += CountStep
		regen = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.Params.Count > CountStep {
		g.Params.Count -= CountStep
		regen = true
	}
	if regen {
		if err := g.Regenerate(); err != nil {
			log.WithError(err).Error("regenerate waypoints")
		}
	}

	ticks := 1
	if g.Fast {
		ticks = FastSpeedMultiplier
	}
	for i := 0; i < ticks; i++ {
		g.Car.Update(g.Path)
	}
	return nil
}

// toScreen transforms world coordinates on the ground plane to screen
// coordinates.
func (g *Game) toScreen(p common.Vec2) (float32, float32) {
	px, py := g.Track.WorldToPixel(p.XZ(0))
	return float32(px)*g.ViewScale + g.ViewOffsetX, float32(py)*g.ViewScale + g.ViewOffsetY
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw Track Image
	if g.TrackImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.ViewScale), float64(g.ViewScale))
		op.GeoM.Translate(float64(g.ViewOffsetX), float64(g.ViewOffsetY))
		screen.DrawImage(g.TrackImage, op)
	}

	// Draw hit bands and waypoint frames
	for _, wp := range g.Path.Waypoints {
		pos := common.FromXZ(wp.Position)
		fwd := common.FromXZ(wp.Forward)

		p1x, p1y := g.toScreen(pos.Sub(fwd.Scale(wp.Width / 2)))
		p2x, p2y := g.toScreen(pos.Add(fwd.Scale(wp.Width / 2)))
		vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 3, ColorBand, true)

		cx, cy := g.toScreen(pos)
		vector.FillCircle(screen, cx, cy, 3, ColorWaypoint, true)
	}

	// Draw Centerline
	for j := 0; j+1 < len(g.Centerline); j++ {
		p1x, p1y := g.toScreen(g.Centerline[j])
		p2x, p2y := g.toScreen(g.Centerline[j+1])
		vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 2, ColorCenterline, true)
	}
	if n := len(g.Centerline); n > 2 {
		p1x, p1y := g.toScreen(g.Centerline[n-1])
		p2x, p2y := g.toScreen(g.Centerline[0])
		vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 2, ColorCenterline, true)
	}

	if g.Car != nil && g.Car.Target >= 0 && g.Car.Target < g.Path.Len() {
		g.drawCar(screen)
	}

	// Draw HUD
	vector.FillRect(screen, 0, 0, 200, 180, color.RGBA{0, 0, 0, 180}, true)

	msg := "WAYPOINT SAMPLER\n"
	msg += "----------------\n"
	msg += fmt.Sprintf("Created: %d/%d\n", g.Result.Created(), g.Result.Requested)
	msg += fmt.Sprintf("Samples: %d\n", g.Params.RadialSamples)
	msg += fmt.Sprintf("Loop:    %.1f\n", g.Path.Length())
	if g.Car != nil {
		msg += fmt.Sprintf("Laps:    %d\n", g.Car.Laps)
		msg += fmt.Sprintf("Lap pos: %.0f%%\n", 100*g.Car.Progress(g.Path)/math.Max(g.Path.Length(), 1e-9))
		msg += fmt.Sprintf("Under:   %s\n", g.surfaceUnderCar())
		msg += fmt.Sprintf("Last:    %.2fs\n", float64(g.Car.LastLapTicks)/60.0)
		msg += fmt.Sprintf("Best:    %.2fs\n", float64(g.Car.BestLapTicks)/60.0)
	}
	if g.Fast {
		msg += "[Fast]"
	} else {
		msg += "[Real-time]"
	}
	msg += "\nR regen  Up/Down count  S speed"

	ebitenutil.DebugPrint(screen, msg)
}

// surfaceUnderCar names the surface a vertical probe below the car strikes.
func (g *Game) surfaceUnderCar() string {
	origin := g.Car.Position.XZ(g.Car.Height + g.Params.RayHeight)
	hit, ok := g.Track.Scene.Cast(origin, mgl64.Vec3{0, -1, 0}, 2*g.Params.RayHeight)
	if !ok {
		return "-"
	}
	if s, ok := g.Track.Scene.Lookup(hit.SurfaceID); ok {
		return s.Name()
	}
	return hit.SurfaceID.String()
}

func (g *Game) drawCar(screen *ebiten.Image) {
	// Car size is given in pixels
	halfW, halfL := 5*g.Track.Grid.Scale, 11*g.Track.Grid.Scale

	cosH := math.Cos(g.Car.Heading)
	sinH := math.Sin(g.Car.Heading)

	// Line to the current target
	tx, ty := g.toScreen(common.FromXZ(g.Path.Waypoints[g.Car.Target].Position))
	cx, cy := g.toScreen(g.Car.Position)
	vector.StrokeLine(screen, cx, cy, tx, ty, 1, ColorTarget, true)

	// 4 corners in world space
	corners := [4]common.Vec2{
		{X: halfL, Y: halfW},
		{X: halfL, Y: -halfW},
		{X: -halfL, Y: -halfW},
		{X: -halfL, Y: halfW},
	}

	var path vector.Path
	for i, p := range corners {
		w := common.Vec2{
			X: g.Car.Position.X + p.X*cosH - p.Y*sinH,
			Y: g.Car.Position.Y + p.X*sinH + p.Y*cosH,
		}
		sx, sy := g.toScreen(w)
		if i == 0 {
			path.MoveTo(sx, sy)
		} else {
			path.LineTo(sx, sy)
		}
	}
	path.Close()

	var cs ebiten.ColorScale
	cs.ScaleWithColor(ColorCar)
	vector.FillPath(screen, &path, nil, &vector.DrawPathOptions{
		AntiAlias:  true,
		ColorScale: cs,
	})

	hx, hy := g.toScreen(g.Car.Position.Add(common.FromAngle(g.Car.Heading).Scale(halfL + 5)))
	vector.StrokeLine(screen, cx, cy, hx, hy, 2, ColorCarHeading, true)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return WindowWidth, WindowHeight
}

func RenderGrid(g *track.Grid) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)

	pixels := make([]byte, g.Width*g.Height*4)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			idx := (y*g.Width + x) * 4

			var c color.RGBA
			switch g.Get(x, y).Type {
			case track.CellTarmac:
				c = ColorTarmac
			case track.CellGravel:
				c = ColorGravel
			case track.CellStart:
				c = ColorStart
			case track.CellFinish:
				c = ColorFinish
			case track.CellDirection:
				c = ColorDir
			default:
				c = ColorWall
			}

			pixels[idx] = c.R
			pixels[idx+1] = c.G
			pixels[idx+2] = c.B
			pixels[idx+3] = 255
		}
	}

	img.WritePixels(pixels)
	return img
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *trackFlag != "" {
		cfg.Track.Image = *trackFlag
	}
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatal(err)
	}

	t, err := track.LoadTrack(cfg.Track.Image, cfg.SurfaceOptions())
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Track Waypoint Sampler")

	// 1. Calculate Scale to fit
	winW, winH := float64(WindowWidth), float64(WindowHeight)
	viewScale := float32(math.Min(winW/float64(t.Grid.Width), winH/float64(t.Grid.Height)))
	viewScale *= ViewScaleMargin

	// 2. Center the track
	viewOffsetX := (float32(winW) - float32(t.Grid.Width)*viewScale) / 2
	viewOffsetY := (float32(winH) - float32(t.Grid.Height)*viewScale) / 2

	game := &Game{
		Track:       t,
		Path:        &track.Path{},
		TrackImage:  RenderGrid(t.Grid),
		Params:      cfg.Sampler,
		ViewScale:   viewScale,
		ViewOffsetX: viewOffsetX,
		ViewOffsetY: viewOffsetY,
	}
	if err := game.Regenerate(); err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
