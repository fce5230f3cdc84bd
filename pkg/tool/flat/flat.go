// Package flat is the first spanner model: one record, one fixed size.
// An adjustable spanner cannot be described in this model at all; that is
// a modeling gap, not a runtime failure. Kept as the starting point of the
// progression; see the parent tool package for the current model.
package flat

import "github.com/fennwick/torq/pkg/tool"

// Spanner is a fixed spanner. Every spanner in this model grips exactly
// one nut size.
type Spanner struct {
	Size   float64 // jaw width in mm
	Length float64 // handle length in mm
	Mass   float64 // kg
}

// Fits reports whether the spanner grips the nut.
func Fits(s Spanner, n tool.Nut) bool {
	return tool.Default.Close(s.Size, n.Size)
}
