package inventory

import (
	"strings"
	"testing"

	"github.com/fennwick/torq/pkg/tool"
)

// buildBench creates a small valid inventory: two fixed spanners, one
// adjustable, and three nuts.
func buildBench(t *testing.T) *Inventory {
	t.Helper()
	inv := New()

	adds := []error{
		inv.AddSpanner("ten", tool.SingleEnded{Size: 10, Length: 160, Mass: 0.3}),
		inv.AddSpanner("thirteen", tool.SingleEnded{Size: 13, Length: 180, Mass: 0.4}),
		inv.AddSpanner("shifter", tool.Adjustable{MaxSize: 24, Length: 250, Mass: 0.6}),
		inv.AddNut("m10", tool.Nut{Size: 10}),
		inv.AddNut("m13", tool.Nut{Size: 13}),
		inv.AddNut("m20", tool.Nut{Size: 20}),
	}
	for _, err := range adds {
		if err != nil {
			t.Fatalf("building inventory: %v", err)
		}
	}
	return inv
}

// hasError reports whether errs contains an error-severity finding whose
// message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning reports whether errs contains a warning-severity finding
// whose message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestAdd_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	inv := New()
	if err := inv.AddSpanner("ten", tool.SingleEnded{Size: 10}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := inv.AddSpanner("ten", tool.SingleEnded{Size: 11}); err == nil {
		t.Error("duplicate spanner name should be rejected")
	}
	if err := inv.AddSpanner("", tool.SingleEnded{Size: 11}); err == nil {
		t.Error("empty spanner name should be rejected")
	}
	if err := inv.AddNut("m10", tool.Nut{Size: 10}); err != nil {
		t.Fatalf("first nut: %v", err)
	}
	if err := inv.AddNut("m10", tool.Nut{Size: 12}); err == nil {
		t.Error("duplicate nut name should be rejected")
	}
}

func TestValidate_SoundInventory(t *testing.T) {
	inv := buildBench(t)
	for _, e := range Validate(inv) {
		t.Errorf("unexpected finding: %s", e)
	}
}

func TestValidate_EmptyInventory(t *testing.T) {
	if errs := Validate(New()); len(errs) != 0 {
		t.Errorf("empty inventory should have no findings, got %d", len(errs))
	}
}

func TestValidate_NonPositiveSizes(t *testing.T) {
	inv := New()
	inv.AddSpanner("broken", tool.SingleEnded{Size: 0, Length: 160, Mass: 0.3})
	inv.AddSpanner("stuck", tool.Adjustable{MaxSize: -1, Length: 250, Mass: 0.6})
	inv.AddNut("mystery", tool.Nut{Size: 0})

	errs := Validate(inv)
	if !hasError(errs, "size 0mm is not positive") {
		t.Error("expected an error for the zero-size spanner")
	}
	if !hasError(errs, "max_size -1mm is not positive") {
		t.Error("expected an error for the negative-max adjustable")
	}
	if len(errs) == 0 {
		t.Fatal("expected findings for invalid sizes")
	}
}

func TestValidate_HandleWarnings(t *testing.T) {
	inv := New()
	inv.AddSpanner("sketch", tool.SingleEnded{Size: 10})
	inv.AddNut("m10", tool.Nut{Size: 10})

	errs := Validate(inv)
	if !hasWarning(errs, "length is not set") {
		t.Error("expected a warning for the unset length")
	}
	if !hasWarning(errs, "mass is not set") {
		t.Error("expected a warning for the unset mass")
	}
	if hasError(errs, "") && len(errs) > 2 {
		t.Errorf("warnings only expected, got: %v", errs)
	}
}

func TestValidate_Coverage(t *testing.T) {
	inv := New()
	inv.AddSpanner("ten", tool.SingleEnded{Size: 10, Length: 160, Mass: 0.3})
	inv.AddSpanner("tiny", tool.Adjustable{MaxSize: 6, Length: 100, Mass: 0.2})
	inv.AddNut("m10", tool.Nut{Size: 10})
	inv.AddNut("m24", tool.Nut{Size: 24})

	errs := Validate(inv)
	if !hasWarning(errs, "no spanner in the inventory fits this nut") {
		t.Error("expected a warning for the unfittable m24")
	}
	if !hasWarning(errs, "jaw opens narrower than every nut") {
		t.Error("expected a warning for the too-narrow adjustable")
	}
}

func TestPairings(t *testing.T) {
	inv := buildBench(t)
	pairings := Pairings(inv)

	// 3 spanners x 3 nuts.
	if len(pairings) != 9 {
		t.Fatalf("expected 9 pairings, got %d", len(pairings))
	}

	want := map[string]bool{
		"shifter/m10":   true,
		"shifter/m13":   true,
		"shifter/m20":   true,
		"ten/m10":       true,
		"ten/m13":       false,
		"ten/m20":       false,
		"thirteen/m10":  false,
		"thirteen/m13":  true,
		"thirteen/m20":  false,
	}
	for _, p := range pairings {
		key := p.Spanner + "/" + p.Nut
		if p.Fits != want[key] {
			t.Errorf("pairing %s: fits = %v, want %v", key, p.Fits, want[key])
		}
	}

	// Ordering must be stable: sorted by spanner, then nut.
	if pairings[0].Spanner != "shifter" || pairings[0].Nut != "m10" {
		t.Errorf("first pairing = %s/%s, want shifter/m10", pairings[0].Spanner, pairings[0].Nut)
	}
}

func TestPairingsWith_Tolerance(t *testing.T) {
	inv := New()
	inv.AddSpanner("worn", tool.SingleEnded{Size: 10, Length: 160, Mass: 0.3})
	inv.AddNut("m10-oversize", tool.Nut{Size: 10.4})

	// A near-miss at the default tolerance.
	if p := Pairings(inv); p[0].Fits {
		t.Error("default tolerance should reject a 0.4mm gap")
	}
	// A widened absolute tolerance flips the verdict.
	if p := PairingsWith(inv, tool.Tolerance{Abs: 0.5}); !p[0].Fits {
		t.Error("0.5mm absolute tolerance should accept a 0.4mm gap")
	}
}

func TestValidateWith_CoverageTolerance(t *testing.T) {
	inv := New()
	inv.AddSpanner("worn", tool.SingleEnded{Size: 10, Length: 160, Mass: 0.3})
	inv.AddNut("m10-oversize", tool.Nut{Size: 10.4})

	if !hasWarning(Validate(inv), "no spanner in the inventory fits this nut") {
		t.Error("expected a coverage warning at the default tolerance")
	}
	if hasWarning(ValidateWith(inv, tool.Tolerance{Abs: 0.5}), "no spanner in the inventory fits this nut") {
		t.Error("a widened tolerance should clear the coverage warning")
	}
}
