package main

import (
	"strings"
	"testing"

	"github.com/fennwick/torq/pkg/config"
	"github.com/fennwick/torq/pkg/grid"
)

func TestEvaluateEndToEnd(t *testing.T) {
	app := NewApp()

	source := `
; a small bench
(spanner "ten" :size 10 :length 160 :mass 0.3)
(adjustable "shifter" :max-size 24 :length 250 :mass 0.6)
(nut "m10" :size 10)
(nut "m20" :size 20)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}

	var names []string
	for _, m := range result.Meshes {
		names = append(names, m.Name)
		if len(m.Vertices) == 0 || len(m.Indices) == 0 {
			t.Errorf("mesh %q is empty", m.Name)
		}
		if m.Color == "" {
			t.Errorf("mesh %q has no color", m.Name)
		}
	}
	want := []string{"shifter", "ten", "m10", "m20"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("mesh names = %v, want %v", names, want)
	}

	if len(result.Pairings) != 4 {
		t.Fatalf("expected 4 pairings, got %d", len(result.Pairings))
	}
	verdicts := map[string]bool{}
	for _, p := range result.Pairings {
		verdicts[p.Spanner+"/"+p.Nut] = p.Fits
	}
	if !verdicts["ten/m10"] {
		t.Error("ten should fit m10")
	}
	if verdicts["ten/m20"] {
		t.Error("ten should not fit m20")
	}
	if !verdicts["shifter/m20"] {
		t.Error("shifter should open to m20")
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Errorf("expected no findings for empty source, got %+v / %v", result.Errors, result.Warnings)
	}
	if len(result.Meshes) != 0 || len(result.Pairings) != 0 {
		t.Errorf("expected empty bench, got %d meshes and %d pairings", len(result.Meshes), len(result.Pairings))
	}
	// Slices must be non-nil so JSON serializes [] rather than null.
	if result.Meshes == nil || result.Pairings == nil || result.Errors == nil || result.Warnings == nil {
		t.Error("result slices must be non-nil empty slices")
	}
}

func TestEvaluateSyntaxErrorSurfaces(t *testing.T) {
	app := NewApp()

	result := app.Evaluate(`(spanner "ten" :size 10`)
	if len(result.Errors) == 0 {
		t.Fatal("expected errors for unbalanced parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(result.Meshes))
	}
}

func TestEvaluateValidationBlocksPreview(t *testing.T) {
	app := NewApp()

	// Negative sizes pass the builtins but fail validation.
	result := app.Evaluate(`(nut "bad" :size -3)`)
	if len(result.Errors) == 0 {
		t.Fatal("expected a validation error for the negative size")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(result.Meshes))
	}
}

func TestEvaluateWarningsDoNotBlock(t *testing.T) {
	app := NewApp()

	// A nut no spanner fits is a warning, not an error.
	result := app.Evaluate(`
(spanner "ten" :size 10 :length 160 :mass 0.3)
(nut "m20" :size 20)
`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a coverage warning for the unfittable nut")
	}
	if len(result.Meshes) != 2 {
		t.Errorf("expected 2 meshes, got %d", len(result.Meshes))
	}
}

func TestEvaluateConfiguredTolerance(t *testing.T) {
	// A worn 10mm spanner against a 10.4mm nut: a near-miss at the
	// default tolerance that a configured absolute allowance accepts.
	source := `
(spanner "worn" :size 10 :length 160 :mass 0.3)
(nut "m10-oversize" :size 10.4)
`
	strict := newApp(config.Default())
	result := strict.Evaluate(source)
	if len(result.Pairings) != 1 || result.Pairings[0].Fits {
		t.Errorf("default tolerance pairings = %+v, want one non-fit", result.Pairings)
	}

	cfg := config.Default()
	cfg.Tolerance.Abs = 0.5
	loose := newApp(cfg)
	result = loose.Evaluate(source)
	if len(result.Pairings) != 1 || !result.Pairings[0].Fits {
		t.Errorf("0.5mm tolerance pairings = %+v, want one fit", result.Pairings)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("the widened tolerance should clear the coverage warning, got %v", result.Warnings)
	}
}

func TestWorldBindings(t *testing.T) {
	app := NewApp()

	start := app.WorldState()
	if start.Robot.Heading.String() != "north" {
		t.Fatalf("robot starts facing %s, want north", start.Robot.Heading)
	}

	after := app.TurnRight()
	if after.Robot.Heading.String() != "east" {
		t.Errorf("after TurnRight facing %s, want east", after.Robot.Heading)
	}

	after = app.Forward()
	if after.Robot.Pos.X != start.Robot.Pos.X+1 {
		t.Errorf("Forward east: x = %d, want %d", after.Robot.Pos.X, start.Robot.Pos.X+1)
	}
	after = app.Backward()
	if after.Robot.Pos != start.Robot.Pos {
		t.Errorf("Backward east: pos = %+v, want %+v", after.Robot.Pos, start.Robot.Pos)
	}

	after = app.TurnLeft()
	if after.Robot.Heading.String() != "north" {
		t.Errorf("after TurnLeft facing %s, want north", after.Robot.Heading)
	}
}

func TestWorldStateSnapshotIsDetached(t *testing.T) {
	app := NewApp()
	app.world.Robot.Pos = grid.Pos{X: 3, Y: 3} // onto the first chest

	snap := app.WorldState()
	after := app.PickUp()

	if len(after.Chests) != 1 {
		t.Fatalf("pickup left %d chests, want 1", len(after.Chests))
	}
	// The earlier snapshot must not see the in-place chest removal.
	if len(snap.Chests) != 2 {
		t.Fatalf("snapshot has %d chests, want 2", len(snap.Chests))
	}
	if snap.Chests[0].Pos != (grid.Pos{X: 3, Y: 3}) {
		t.Errorf("snapshot chest 0 moved to %+v", snap.Chests[0].Pos)
	}
}

func TestPreviewFloor(t *testing.T) {
	app := NewApp()

	result := app.PreviewFloor()
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
	// Two chests plus the robot.
	if len(result.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(result.Meshes))
	}
	last := result.Meshes[len(result.Meshes)-1]
	if last.Name != "robot" {
		t.Errorf("last mesh is %q, want robot", last.Name)
	}
}
