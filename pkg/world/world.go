// Package world holds the state of the workshop floor demo: a robot that
// turns and drives across the grid, and chests it can pick up. Rendering
// lives with the frontend; this package is pure state and movement.
package world

import (
	"fmt"

	"github.com/fennwick/torq/pkg/grid"
)

// Heading is the closed set of directions the robot can face.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Left returns the heading after a 90 degree counterclockwise turn.
func (h Heading) Left() Heading {
	return (h + 3) % 4
}

// Right returns the heading after a 90 degree clockwise turn.
func (h Heading) Right() Heading {
	return (h + 1) % 4
}

// Delta returns the tile offset of one step along the heading. A value
// outside the closed set is a programming error, not a condition to
// handle, so Delta panics on it.
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	panic(fmt.Sprintf("world: unreachable heading %d", int(h)))
}

// Robot is the movable actor. It occupies one tile and faces a heading.
type Robot struct {
	Pos     grid.Pos `json:"pos"`
	Heading Heading  `json:"heading"`
}

// Chest is a pickable item occupying one tile.
type Chest struct {
	Pos grid.Pos `json:"pos"`
}

// World bundles the grid, the robot, and the remaining chests.
type World struct {
	Grid   grid.Grid `json:"grid"`
	Robot  Robot     `json:"robot"`
	Chests []Chest   `json:"chests"`
	Held   int       `json:"held"` // chests picked up so far
}

// New creates a world with the robot centered on the grid.
func New(g grid.Grid, chests []Chest) *World {
	return &World{
		Grid:   g,
		Robot:  Robot{Pos: grid.Pos{X: g.XTiles / 2, Y: g.YTiles / 2}, Heading: North},
		Chests: chests,
	}
}

// Clone returns a snapshot that shares no state with w. PickUp shifts
// the chest slice in place, so callers holding a plain struct copy would
// still see its backing array change underneath them.
func (w *World) Clone() World {
	c := *w
	c.Chests = append([]Chest(nil), w.Chests...)
	return c
}

// TurnLeft rotates the robot 90 degrees counterclockwise.
func (w *World) TurnLeft() {
	w.Robot.Heading = w.Robot.Heading.Left()
}

// TurnRight rotates the robot 90 degrees clockwise.
func (w *World) TurnRight() {
	w.Robot.Heading = w.Robot.Heading.Right()
}

// Forward moves the robot one tile along its heading. Moves that would
// leave the grid are ignored; the robot stops at the edge.
func (w *World) Forward() {
	w.step(1)
}

// Backward moves the robot one tile against its heading, clamped at the
// grid edge like Forward.
func (w *World) Backward() {
	w.step(-1)
}

func (w *World) step(sign int) {
	dx, dy := w.Robot.Heading.Delta()
	next := grid.Pos{X: w.Robot.Pos.X + sign*dx, Y: w.Robot.Pos.Y + sign*dy}
	if !w.Grid.Contains(next) {
		return
	}
	w.Robot.Pos = next
}

// ChestAt returns the index of the chest on the given tile, or -1.
func (w *World) ChestAt(p grid.Pos) int {
	for i, c := range w.Chests {
		if c.Pos == p {
			return i
		}
	}
	return -1
}

// PickUp removes the chest under the robot, if any, and reports whether
// one was picked up.
func (w *World) PickUp() bool {
	i := w.ChestAt(w.Robot.Pos)
	if i < 0 {
		return false
	}
	w.Chests = append(w.Chests[:i], w.Chests[i+1:]...)
	w.Held++
	return true
}
