// Package viewer implements the interactive molecule viewer loop.
package viewer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Traksewt/pv/internal/config"
	"github.com/Traksewt/pv/internal/viewer/camera"
	"github.com/Traksewt/pv/internal/viewer/input"
	"github.com/Traksewt/pv/internal/viewer/picking"
	"github.com/Traksewt/pv/internal/viewer/renderer"
	"github.com/Traksewt/pv/internal/viewer/window"
	"github.com/Traksewt/pv/pkg/color"
	"github.com/Traksewt/pv/pkg/math"
	"github.com/Traksewt/pv/pkg/mol"
	"github.com/Traksewt/pv/pkg/render"
)

const fovY = 45.0 * math32.Pi / 180.0

// colorModes is the cycle order for the C hotkey.
var colorModes = []string{"uniform", "element", "chain", "ss", "ssrun", "rainbow"}

// Viewer is the main application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	structure *mol.Structure
	geometry  *render.Geometry
	mesh      *renderer.Mesh

	rep       render.Representation
	colorMode string
	gradient  color.Gradient
	opacity   float32

	width, height int

	// Click-vs-drag disambiguation for picking
	downX, downY int
	dragged      bool
}

// New creates a viewer showing the structure loaded from path.
func New(cfg *config.Config, path string) (*Viewer, error) {
	slog.Info("initializing viewer", "file", path)

	rep, err := render.ParseRepresentation(cfg.Render.Representation)
	if err != nil {
		return nil, err
	}

	gradient, ok := color.GradientByName(cfg.Render.Gradient)
	if !ok {
		return nil, fmt.Errorf("unknown gradient %q", cfg.Render.Gradient)
	}

	structure, err := mol.ReadPDBFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	slog.Info("structure loaded",
		"chains", len(structure.Chains()),
		"atoms", structure.AtomCount(),
	)

	v := &Viewer{
		cfg:       cfg,
		structure: structure,
		rep:       rep,
		colorMode: cfg.Render.ColorMode,
		gradient:  gradient,
		opacity:   1.0,
		width:     cfg.Graphics.Width,
		height:    cfg.Graphics.Height,
	}

	// Create window (this also creates the OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "pvview - " + path,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	bg, err := color.Parse(cfg.Render.Background)
	if err != nil {
		slog.Warn("invalid background color, using default", "spec", cfg.Render.Background)
		bg = color.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	}

	// Create renderer (AFTER window, since the OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: bg,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.camera = camera.NewOrbitCamera()
	min, max := structure.Bounds()
	v.camera.FitToBounds(min, max)

	if err := v.rebuild(); err != nil {
		v.Close()
		return nil, err
	}

	slog.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		v.renderer.Begin()
		v.drawFrame()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("fps", "count", frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	slog.Info("closing viewer")

	if v.mesh != nil {
		v.mesh.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.width, v.height = event.Width, event.Height
		v.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		v.handleKey(event.Key)

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.downX, v.downY = event.MouseX, event.MouseY
			v.dragged = false
		}

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT && !v.dragged {
			v.pick(event.MouseX, event.MouseY)
		}

	case input.EventMouseMove:
		if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
			dx := event.MouseX - v.downX
			dy := event.MouseY - v.downY
			if dx*dx+dy*dy > 9 {
				v.dragged = true
			}
			v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
		} else if v.input.IsButtonHeld(sdl.BUTTON_RIGHT) || v.input.IsButtonHeld(sdl.BUTTON_MIDDLE) {
			v.camera.HandlePan(float32(event.RelX), float32(event.RelY))
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(event.Scroll)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		v.running = false

	case sdl.SCANCODE_1:
		v.setRepresentation(render.RepLines)
	case sdl.SCANCODE_2:
		v.setRepresentation(render.RepSpheres)
	case sdl.SCANCODE_3:
		v.setRepresentation(render.RepTrace)
	case sdl.SCANCODE_4:
		v.setRepresentation(render.RepTube)
	case sdl.SCANCODE_5:
		v.setRepresentation(render.RepCartoon)

	case sdl.SCANCODE_C:
		v.cycleColorMode()

	case sdl.SCANCODE_O:
		v.toggleOpacity()

	case sdl.SCANCODE_R:
		min, max := v.structure.Bounds()
		v.camera.FitToBounds(min, max)
	}
}

func (v *Viewer) setRepresentation(rep render.Representation) {
	if rep == v.rep {
		return
	}
	v.rep = rep
	if err := v.rebuild(); err != nil {
		slog.Error("rebuild failed", "representation", rep.String(), "error", err)
	}
}

func (v *Viewer) cycleColorMode() {
	next := 0
	for i, mode := range colorModes {
		if mode == v.colorMode {
			next = (i + 1) % len(colorModes)
			break
		}
	}
	v.colorMode = colorModes[next]

	op, err := v.colorer()
	if err != nil {
		slog.Error("bad color mode", "mode", v.colorMode, "error", err)
		return
	}
	if err := v.geometry.ColorBy(op); err != nil {
		slog.Error("recolor failed", "mode", v.colorMode, "error", err)
		return
	}
	v.mesh.UpdateColors(v.geometry)
	slog.Info("color mode changed", "mode", v.colorMode)
}

func (v *Viewer) toggleOpacity() {
	if v.opacity == 1.0 {
		v.opacity = 0.5
	} else {
		v.opacity = 1.0
	}
	if err := v.geometry.SetOpacity(v.opacity); err != nil {
		slog.Error("opacity change failed", "error", err)
		return
	}
	v.mesh.UpdateColors(v.geometry)
	slog.Info("opacity changed", "opacity", v.opacity)
}

// rebuild regenerates geometry for the current representation and
// uploads it, replacing the previous mesh.
func (v *Viewer) rebuild() error {
	op, err := v.colorer()
	if err != nil {
		return err
	}

	start := time.Now()
	geom, err := render.Render(v.structure, v.rep, render.Options{
		Color:        op,
		Radius:       v.cfg.Render.Radius,
		SphereRadius: v.cfg.Render.SphereRadius,
		SplineDetail: v.cfg.Render.SplineDetail,
		ArcDetail:    v.cfg.Render.ArcDetail,
		Strict:       v.cfg.Render.Strict,
	})
	if err != nil {
		return fmt.Errorf("building %s: %w", v.rep, err)
	}
	if v.opacity != 1.0 {
		if err := geom.SetOpacity(v.opacity); err != nil {
			return err
		}
	}

	if v.mesh != nil {
		v.mesh.Delete()
	}
	v.geometry = geom
	v.mesh = renderer.Upload(geom)

	slog.Info("geometry built",
		"representation", v.rep.String(),
		"vertices", geom.VertexCount(),
		"elapsed", time.Since(start),
	)
	return nil
}

// colorer builds the coloring operation for the current mode.
func (v *Viewer) colorer() (render.Colorer, error) {
	switch v.colorMode {
	case "uniform":
		return render.Uniform(color.LightGrey), nil
	case "element":
		return render.ByElement(), nil
	case "chain":
		return render.ByChain(v.gradient), nil
	case "ss":
		return render.BySS(), nil
	case "ssrun":
		return render.SSSuccession(v.gradient, color.LightGrey), nil
	case "rainbow":
		return render.Rainbow(v.gradient), nil
	}
	return nil, fmt.Errorf("unknown color mode %q", v.colorMode)
}

func (v *Viewer) drawFrame() {
	aspect := float32(v.width) / float32(v.height)
	proj := math.Perspective(fovY, aspect, 0.1, 5000.0)
	view := v.camera.ViewMatrix()
	model := math.Identity()
	mvp := proj.Mul(view).Mul(model)

	// Headlight from the camera
	lightDir := v.camera.Position().Sub(v.camera.Center).Normalize()

	v.renderer.Draw(v.mesh, mvp, model, lightDir, v.pointScale())
}

// pointScale converts the sphere radius to a sprite diameter in pixels
// for a vertex at clip-space depth w=1.
func (v *Viewer) pointScale() float32 {
	focal := float32(v.height) / (2 * math32.Tan(fovY/2))
	return 2 * v.cfg.Render.SphereRadius * focal
}

// pick casts a ray through the clicked pixel and logs the hit atom.
func (v *Viewer) pick(x, y int) {
	aspect := float32(v.width) / float32(v.height)
	proj := math.Perspective(fovY, aspect, 0.1, 5000.0)
	viewProj := proj.Mul(v.camera.ViewMatrix())

	ray := picking.ScreenToRay(float32(x), float32(y), float32(v.width), float32(v.height), viewProj.Inverse())

	radius := float32(1.0)
	if v.rep == render.RepSpheres {
		radius = v.cfg.Render.SphereRadius
	}

	atom := picking.PickAtom(v.structure, ray, radius)
	if atom == nil {
		return
	}
	res := atom.Residue()
	slog.Info("picked atom",
		"chain", res.Chain().Name,
		"residue", fmt.Sprintf("%s%d", res.Name, res.Num),
		"atom", atom.Name,
		"element", atom.Element,
	)
}
