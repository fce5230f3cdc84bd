package tool

import (
	"fmt"
	"math"
)

// Tolerance controls how close two physical measurements must be to count
// as equal. Manufactured sizes never compare exactly equal as floats.
type Tolerance struct {
	Rel float64 // relative tolerance, scaled by the larger magnitude
	Abs float64 // absolute floor in mm
}

// Default is the tolerance used by Fits: a relative tolerance of 1e-9
// and no absolute floor.
var Default = Tolerance{Rel: 1e-9}

// Close reports whether a and b are equal within the tolerance:
// |a-b| <= max(Rel*max(|a|,|b|), Abs).
func (t Tolerance) Close(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(t.Rel*math.Max(math.Abs(a), math.Abs(b)), t.Abs)
}

// Match dispatches over the closed Spanner variant set. Adding a variant
// changes the handler set Match requires, so every call site fails to
// compile until it handles the new case.
// Pointers to variants dispatch as their values, since the value-receiver
// marker method puts *SingleEnded and *Adjustable in the interface too.
func Match[T any](s Spanner, single func(SingleEnded) T, adjustable func(Adjustable) T) T {
	switch v := s.(type) {
	case SingleEnded:
		return single(v)
	case *SingleEnded:
		return single(*v)
	case Adjustable:
		return adjustable(v)
	case *Adjustable:
		return adjustable(*v)
	}
	// Unreachable: the marker method seals the variant set.
	panic(fmt.Sprintf("tool: unreachable spanner variant %T", s))
}

// Fits reports whether the spanner can grip the nut, using the Default
// tolerance for the single-ended size comparison.
func Fits(s Spanner, n Nut) bool {
	return FitsWithin(s, n, Default)
}

// FitsWithin is Fits with an explicit tolerance. A single-ended spanner
// fits when its size is tolerance-close to the nut size. An adjustable
// spanner fits when its jaw opens at least as wide as the nut; that is
// an inequality, so no tolerance applies.
func FitsWithin(s Spanner, n Nut, tol Tolerance) bool {
	return Match(s,
		func(t SingleEnded) bool { return tol.Close(t.Size, n.Size) },
		func(t Adjustable) bool { return t.MaxSize >= n.Size },
	)
}
