package inventory

import (
	"fmt"

	"github.com/fennwick/torq/pkg/tool"
)

// Severity indicates whether a validation finding blocks use of the
// inventory or is merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks use
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Item     string // which named item has the problem ("" if inventory-level)
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Item, e.Message)
}

// Validate runs all checks on the inventory and returns the findings.
// An empty slice means the inventory is sound. Read-only.
func Validate(inv *Inventory) []ValidationError {
	return ValidateWith(inv, tool.Default)
}

// ValidateWith is Validate with an explicit fit tolerance for the
// coverage checks.
func ValidateWith(inv *Inventory, tol tool.Tolerance) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateSpanners(inv)...)
	errs = append(errs, validateNuts(inv)...)
	errs = append(errs, validateCoverage(inv, tol)...)
	return errs
}

// validateSpanners checks per-spanner physical plausibility: sizes must
// be positive, and a zero length or mass is suspicious but usable.
func validateSpanners(inv *Inventory) []ValidationError {
	var errs []ValidationError

	for _, name := range inv.SpannerNames() {
		s, _ := inv.Spanner(name)

		errs = append(errs, tool.Match(s,
			func(t tool.SingleEnded) []ValidationError {
				var out []ValidationError
				if t.Size <= 0 {
					out = append(out, ValidationError{
						Item:     name,
						Message:  fmt.Sprintf("size %vmm is not positive", t.Size),
						Severity: SeverityError,
					})
				}
				out = append(out, checkHandle(name, t.Length, t.Mass)...)
				return out
			},
			func(t tool.Adjustable) []ValidationError {
				var out []ValidationError
				if t.MaxSize <= 0 {
					out = append(out, ValidationError{
						Item:     name,
						Message:  fmt.Sprintf("max_size %vmm is not positive", t.MaxSize),
						Severity: SeverityError,
					})
				}
				out = append(out, checkHandle(name, t.Length, t.Mass)...)
				return out
			},
		)...)
	}

	return errs
}

// checkHandle emits warnings for physically dubious handle attributes.
func checkHandle(name string, length, mass float64) []ValidationError {
	var errs []ValidationError
	if length <= 0 {
		errs = append(errs, ValidationError{
			Item:     name,
			Message:  "length is not set",
			Severity: SeverityWarning,
		})
	}
	if mass <= 0 {
		errs = append(errs, ValidationError{
			Item:     name,
			Message:  "mass is not set",
			Severity: SeverityWarning,
		})
	}
	return errs
}

// validateNuts checks that every nut has a positive nominal size.
func validateNuts(inv *Inventory) []ValidationError {
	var errs []ValidationError

	for _, name := range inv.NutNames() {
		n, _ := inv.Nut(name)
		if n.Size <= 0 {
			errs = append(errs, ValidationError{
				Item:     name,
				Message:  fmt.Sprintf("size %vmm is not positive", n.Size),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateCoverage warns about items that can never pair up: a nut no
// spanner fits, or an adjustable spanner too narrow for every nut.
func validateCoverage(inv *Inventory, tol tool.Tolerance) []ValidationError {
	var errs []ValidationError

	if len(inv.spanners) == 0 || len(inv.nuts) == 0 {
		return nil
	}

	for _, nutName := range inv.NutNames() {
		n, _ := inv.Nut(nutName)
		fitted := false
		for _, spannerName := range inv.SpannerNames() {
			s, _ := inv.Spanner(spannerName)
			if tool.FitsWithin(s, n, tol) {
				fitted = true
				break
			}
		}
		if !fitted {
			errs = append(errs, ValidationError{
				Item:     nutName,
				Message:  "no spanner in the inventory fits this nut",
				Severity: SeverityWarning,
			})
		}
	}

	for _, spannerName := range inv.SpannerNames() {
		s, _ := inv.Spanner(spannerName)
		adj, ok := s.(tool.Adjustable)
		if !ok {
			continue
		}
		usable := false
		for _, nutName := range inv.NutNames() {
			n, _ := inv.Nut(nutName)
			if adj.MaxSize >= n.Size {
				usable = true
				break
			}
		}
		if !usable {
			errs = append(errs, ValidationError{
				Item:     spannerName,
				Message:  "jaw opens narrower than every nut in the inventory",
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}
