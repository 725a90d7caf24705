// Package renderer draws molecular geometry with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Traksewt/pv/internal/logger"
	"github.com/Traksewt/pv/pkg/color"
	"github.com/Traksewt/pv/pkg/math"
	"github.com/Traksewt/pv/pkg/render"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background color.Color
}

// Renderer owns the OpenGL state and the shader program for each
// primitive topology.
type Renderer struct {
	config Config

	meshProgram  *Program
	lineProgram  *Program
	pointProgram *Program

	// Per-program uniform locations
	meshMVP, meshModel, meshLight    int32
	lineMVP                          int32
	pointMVP, pointScale, pointLight int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)

	var err error
	if r.meshProgram, err = NewProgram(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if r.lineProgram, err = NewProgram(lineVertexShader, lineFragmentShader); err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	if r.pointProgram, err = NewProgram(pointVertexShader, pointFragmentShader); err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}

	r.meshMVP = r.meshProgram.Uniform("uMVP")
	r.meshModel = r.meshProgram.Uniform("uModel")
	r.meshLight = r.meshProgram.Uniform("uLightDir")
	r.lineMVP = r.lineProgram.Uniform("uMVP")
	r.pointMVP = r.pointProgram.Uniform("uMVP")
	r.pointScale = r.pointProgram.Uniform("uPointScale")
	r.pointLight = r.pointProgram.Uniform("uLightDir")

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, p := range []*Program{r.meshProgram, r.lineProgram, r.pointProgram} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetBackground changes the clear color.
func (r *Renderer) SetBackground(c color.Color) {
	r.config.Background = c
	gl.ClearColor(c.R, c.G, c.B, 1.0)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders one mesh with the given matrices. lightDir is in world
// space; pointScale controls sphere sprite size in pixels.
func (r *Renderer) Draw(m *Mesh, mvp, model math.Mat4, lightDir math.Vec3, pointScale float32) {
	switch m.topology {
	case render.TopologyTriangles:
		r.meshProgram.Use()
		gl.UniformMatrix4fv(r.meshMVP, 1, false, mvp.Ptr())
		gl.UniformMatrix4fv(r.meshModel, 1, false, model.Ptr())
		gl.Uniform3f(r.meshLight, lightDir.X, lightDir.Y, lightDir.Z)
	case render.TopologyLines:
		r.lineProgram.Use()
		gl.UniformMatrix4fv(r.lineMVP, 1, false, mvp.Ptr())
	case render.TopologyPoints:
		r.pointProgram.Use()
		gl.UniformMatrix4fv(r.pointMVP, 1, false, mvp.Ptr())
		gl.Uniform1f(r.pointScale, pointScale)
		gl.Uniform3f(r.pointLight, lightDir.X, lightDir.Y, lightDir.Z)
	}
	m.draw()
}
