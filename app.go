package main

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/fennwick/torq/pkg/config"
	"github.com/fennwick/torq/pkg/engine"
	"github.com/fennwick/torq/pkg/grid"
	"github.com/fennwick/torq/pkg/inventory"
	"github.com/fennwick/torq/pkg/kernel"
	"github.com/fennwick/torq/pkg/kernel/sdfx"
	"github.com/fennwick/torq/pkg/preview"
	"github.com/fennwick/torq/pkg/tool"
	"github.com/fennwick/torq/pkg/world"
)

// configFile is looked up in the working directory at startup.
const configFile = "torq.yaml"

// colorPalette is a default palette used to assign distinct colors to
// bench items.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via
// bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
	grid   grid.Grid
	tol    tool.Tolerance

	mu    sync.Mutex
	world *world.World
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// PairingData reports one spanner/nut verdict to the frontend.
type PairingData struct {
	Spanner string `json:"spanner"`
	Nut     string `json:"nut"`
	Fits    bool   `json:"fits"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Pairings []PairingData   `json:"pairings"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// NewApp creates a new App with an engine, the sdfx kernel, and the
// floor world. Configuration comes from torq.yaml when present.
func NewApp() *App {
	cfg := config.Default()
	if loaded, err := config.Load(configFile); err == nil {
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("ignoring %s: %v", configFile, err)
	}
	return newApp(cfg)
}

// newApp wires an App from an explicit configuration.
func newApp(cfg config.Config) *App {
	g := cfg.FloorGrid()
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
		grid:   g,
		tol:    cfg.ToolTolerance(),
		world: world.New(g, []world.Chest{
			{Pos: grid.Pos{X: 3, Y: 3}},
			{Pos: grid.Pos{X: 12, Y: 9}},
		}),
	}
}

// startup is called by Wails on app startup. The context is saved so we
// can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source and returns bench meshes, fit pairings, and
// errors. This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Pairings: []PairingData{},
		Errors:   []EvalErrorData{},
		Warnings: []string{},
	}

	// Step 1: Evaluate the Lisp source into an inventory.
	inv, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 2: Validate; blocking findings stop the preview.
	blocked := false
	for _, v := range inventory.ValidateWith(inv, a.tol) {
		if v.Severity == inventory.SeverityError {
			result.Errors = append(result.Errors, EvalErrorData{Message: v.Error()})
			blocked = true
		} else {
			result.Warnings = append(result.Warnings, v.Error())
		}
	}
	if blocked {
		return result
	}

	// Step 3: Fit pairings for the verdict table.
	for _, p := range inventory.PairingsWith(inv, a.tol) {
		result.Pairings = append(result.Pairings, PairingData{
			Spanner: p.Spanner,
			Nut:     p.Nut,
			Fits:    p.Fits,
		})
	}

	// Step 4: Bench meshes.
	meshes, err := preview.Bench(inv, nil, a.grid, a.kernel)
	if err != nil {
		log.Printf("preview error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "preview failed: " + err.Error()})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

// WorldState returns a snapshot of the floor world.
func (a *App) WorldState() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.world.Clone()
}

// TurnLeft rotates the robot counterclockwise and returns the new state.
func (a *App) TurnLeft() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.TurnLeft()
	return a.world.Clone()
}

// TurnRight rotates the robot clockwise and returns the new state.
func (a *App) TurnRight() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.TurnRight()
	return a.world.Clone()
}

// Forward drives the robot one tile ahead, clamped at the grid edge.
func (a *App) Forward() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.Forward()
	return a.world.Clone()
}

// Backward drives the robot one tile back, clamped at the grid edge.
func (a *App) Backward() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.Backward()
	return a.world.Clone()
}

// PickUp lifts the chest under the robot, if any.
func (a *App) PickUp() world.World {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.PickUp()
	return a.world.Clone()
}

// PreviewFloor returns meshes for the floor objects (chests and robot).
func (a *App) PreviewFloor() EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Pairings: []PairingData{},
		Errors:   []EvalErrorData{},
		Warnings: []string{},
	}

	a.mu.Lock()
	snapshot := a.world.Clone()
	a.mu.Unlock()

	meshes, err := preview.Bench(nil, &snapshot, a.grid, a.kernel)
	if err != nil {
		log.Printf("floor preview error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}
