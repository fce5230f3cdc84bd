// Package grid defines the workshop floor grid: a rectangle of square
// tiles addressed by integer tile coordinates.
package grid

// Grid is an immutable tile layout. Pixel extents derive from the tile
// counts and tile size.
type Grid struct {
	XTiles   int `json:"x_tiles"`
	YTiles   int `json:"y_tiles"`
	TileSize int `json:"tile_size"` // pixels per tile edge
}

// Width returns the total width in pixels.
func (g Grid) Width() int {
	return g.TileSize * g.XTiles
}

// Height returns the total height in pixels.
func (g Grid) Height() int {
	return g.TileSize * g.YTiles
}

// Pos is a tile coordinate. (0,0) is the top-left tile.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Contains reports whether the tile coordinate lies on the grid.
func (g Grid) Contains(p Pos) bool {
	return p.X >= 0 && p.X < g.XTiles && p.Y >= 0 && p.Y < g.YTiles
}

// Center returns the pixel center of a tile. Useful for placing objects
// drawn around their midpoint.
func (g Grid) Center(p Pos) (x, y float64) {
	half := float64(g.TileSize) / 2
	return float64(p.X*g.TileSize) + half, float64(p.Y*g.TileSize) + half
}
