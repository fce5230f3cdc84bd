package tool

// Nut is a hex nut identified by its nominal size (jaw width in mm).
// Nut values are immutable.
type Nut struct {
	Size float64
}

// Spanner is the closed set of spanner variants. The unexported marker
// method restricts implementations to this package, so dispatch over the
// variant set can be exhaustive.
type Spanner interface {
	spanner()
}

// SingleEnded is a fixed spanner that grips exactly one nut size.
type SingleEnded struct {
	Size   float64 // jaw width in mm
	Length float64 // handle length in mm
	Mass   float64 // kg
}

func (SingleEnded) spanner() {}

// Adjustable is a shifting spanner whose jaw opens up to MaxSize.
type Adjustable struct {
	MaxSize float64 // largest jaw opening in mm
	Length  float64 // handle length in mm
	Mass    float64 // kg
}

func (Adjustable) spanner() {}
