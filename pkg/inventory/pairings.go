package inventory

import "github.com/fennwick/torq/pkg/tool"

// Pairing records whether one named spanner fits one named nut.
type Pairing struct {
	Spanner string
	Nut     string
	Fits    bool
}

// Pairings cross-checks every spanner against every nut with the default
// tolerance. The result is ordered by spanner name, then nut name, so it
// is stable across runs.
func Pairings(inv *Inventory) []Pairing {
	return PairingsWith(inv, tool.Default)
}

// PairingsWith is Pairings with an explicit fit tolerance.
func PairingsWith(inv *Inventory, tol tool.Tolerance) []Pairing {
	var out []Pairing
	for _, spannerName := range inv.SpannerNames() {
		s, _ := inv.Spanner(spannerName)
		for _, nutName := range inv.NutNames() {
			n, _ := inv.Nut(nutName)
			out = append(out, Pairing{
				Spanner: spannerName,
				Nut:     nutName,
				Fits:    tool.FitsWithin(s, n, tol),
			})
		}
	}
	return out
}
