// Package preview lays workshop items out on the floor grid and produces
// one triangle mesh per item using a geometry kernel. Spanners occupy
// the first bench row, nuts the second; world objects (robot, chests)
// sit on their own tiles.
package preview

import (
	"fmt"

	"github.com/fennwick/torq/pkg/grid"
	"github.com/fennwick/torq/pkg/inventory"
	"github.com/fennwick/torq/pkg/kernel"
	"github.com/fennwick/torq/pkg/tool"
	"github.com/fennwick/torq/pkg/world"
)

// benchRows reserved at the top of the grid for inventory items.
const (
	spannerRow = 0
	nutRow     = 1
)

// Bench builds meshes for every inventory item and every world object.
// Either inv or w may be nil. The kernel is read-only; meshes come back
// in a stable order (spanners, nuts, chests, robot).
func Bench(inv *inventory.Inventory, w *world.World, g grid.Grid, k kernel.Kernel) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh

	if inv != nil {
		for col, name := range inv.SpannerNames() {
			s, _ := inv.Spanner(name)
			m, err := itemMesh(k, spannerSolid(k, s), name, g, grid.Pos{X: col, Y: spannerRow})
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, m)
		}
		for col, name := range inv.NutNames() {
			n, _ := inv.Nut(name)
			m, err := itemMesh(k, nutSolid(k, n), name, g, grid.Pos{X: col, Y: nutRow})
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, m)
		}
	}

	if w != nil {
		tile := float64(g.TileSize)
		for i, c := range w.Chests {
			s := k.Box(tile*0.8, tile*0.8, tile*0.5)
			m, err := itemMesh(k, s, fmt.Sprintf("chest-%d", i), g, c.Pos)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, m)
		}

		// The robot is a flat box rotated to its heading. Headings are
		// consecutive quarter turns, so the angle is 90 degrees per step.
		robot := k.Box(tile*0.6, tile*0.4, tile*0.3)
		robot = k.Rotate(robot, 0, 0, float64(w.Robot.Heading)*90)
		m, err := itemMesh(k, robot, "robot", g, w.Robot.Pos)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}

	return meshes, nil
}

// itemMesh places a solid at the center of a tile and meshes it.
func itemMesh(k kernel.Kernel, s kernel.Solid, name string, g grid.Grid, p grid.Pos) (*kernel.Mesh, error) {
	x, y := g.Center(p)
	m, err := k.ToMesh(k.Translate(s, x, y, 0))
	if err != nil {
		return nil, fmt.Errorf("meshing %q: %w", name, err)
	}
	m.Name = name
	return m, nil
}

// spannerSolid builds a cosmetic spanner: a handle bar plus a round head
// sized to the jaw. Proportions only need to read well in the preview.
func spannerSolid(k kernel.Kernel, s tool.Spanner) kernel.Solid {
	return tool.Match(s,
		func(t tool.SingleEnded) kernel.Solid {
			length := orDefault(t.Length, 10*t.Size)
			handle := k.Box(length, t.Size*1.2, t.Size*0.4)
			head := k.Cylinder(t.Size*0.4, t.Size)
			return k.Union(handle, k.Translate(head, length/2, 0, 0))
		},
		func(t tool.Adjustable) kernel.Solid {
			length := orDefault(t.Length, 8*t.MaxSize)
			handle := k.Box(length, t.MaxSize*0.9, t.MaxSize*0.35)
			jaw := k.Box(t.MaxSize*1.5, t.MaxSize*1.5, t.MaxSize*0.35)
			return k.Union(handle, k.Translate(jaw, length/2, 0, 0))
		},
	)
}

// nutSolid builds a nut as a ring: outer body minus the threaded bore.
func nutSolid(k kernel.Kernel, n tool.Nut) kernel.Solid {
	body := k.Cylinder(n.Size*0.8, n.Size)
	bore := k.Cylinder(n.Size, n.Size*0.45)
	return k.Difference(body, bore)
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
