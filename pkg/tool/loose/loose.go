// Package loose is the second spanner model: one record with two nilable
// size fields and no constraint between them. A spanner with neither
// field set is representable, and so is one with both. Both checkers
// below treat the neither-set state as a fatal programming error; the
// both-set state is silently resolved in favor of the fixed size.
//
// These illegal states are the reason this model was replaced. The
// parent tool package removes them structurally.
package loose

import "github.com/fennwick/torq/pkg/tool"

// Spanner describes either a fixed or an adjustable spanner, depending
// on which of Size and MaxSize is set. Nothing enforces that exactly one
// of them is.
type Spanner struct {
	Length  float64  // handle length in mm
	Mass    float64  // kg
	Size    *float64 // jaw width in mm; set for fixed spanners
	MaxSize *float64 // largest jaw opening in mm; set for adjustable spanners
}

// Fits assumes the spanner is fixed and compares its size to the nut.
// If Size is unset this dereferences nil and panics: the caller has read
// a field the value never promised to carry.
func Fits(s Spanner, n tool.Nut) bool {
	return tool.Default.Close(*s.Size, n.Size)
}

// FitsEither handles both spanner shapes, preferring the fixed size when
// both fields are set. It panics when neither field is set, since such a
// spanner describes no physical tool.
func FitsEither(s Spanner, n tool.Nut) bool {
	if s.Size != nil {
		return tool.Default.Close(*s.Size, n.Size)
	}
	if s.MaxSize != nil {
		return *s.MaxSize >= n.Size
	}
	panic("loose: spanner must have at least one of size or max_size set")
}
