// Package viz renders the traced nodes of a running circuit.Simulator as a
// strip of colored cells in an OpenGL window: one flat-colored cell per
// traced handle, green when energized and dark otherwise. It is a thin
// driver-side consumer of the circuit package, never the reverse.
//
// Unlike a frame-buffer blit, a relay-state strip has no pixel detail to
// upload: each cell is a single solid color, so the window is painted with
// scissored clears rather than a textured quad and shader pair.
package viz

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	cellWidth  = 24
	cellHeight = 48
)

// energizedColor and restingColor are the two flat fills a cell can take;
// there is no gradient or texture detail to represent.
var (
	energizedColor = [3]float32{40.0 / 255, 220.0 / 255, 90.0 / 255}
	restingColor   = [3]float32{25.0 / 255, 25.0 / 255, 30.0 / 255}
)

// Window is an open cell-strip visualizer.
type Window struct {
	window *glfw.Window
	cells  int
}

// Open creates a window wide enough to show one cell per traced handle.
func Open(cells int) (*Window, error) {
	if cells < 1 {
		cells = 1
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("viz: glfw.Init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	window, err := glfw.CreateWindow(cells*cellWidth, cellHeight, "z3mu relay states", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("viz: CreateWindow: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("viz: gl.Init: %w", err)
	}
	gl.Enable(gl.SCISSOR_TEST)
	return &Window{window: window, cells: cells}, nil
}

// Render paints one cell per entry in states: green if true, dark
// otherwise. Each cell is cleared independently under a scissor rect rather
// than drawn as geometry, since a flat fill is all a relay state needs. It
// is the caller's responsibility to call this once per Simulator.Step,
// synchronously from the caller's own loop.
func (w *Window) Render(states []bool) {
	if w.window.ShouldClose() {
		return
	}
	for i := 0; i < w.cells; i++ {
		c := restingColor
		if i < len(states) && states[i] {
			c = energizedColor
		}
		gl.Scissor(int32(i*cellWidth), 0, cellWidth, cellHeight)
		gl.ClearColor(c[0], c[1], c[2], 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	w.window.SwapBuffers()
	glfw.PollEvents()
}

// Close releases the window and terminates glfw.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}
