// Package checked is the third spanner model: the nilable fields of the
// loose model behind a constructor that rejects the neither-set state at
// build time. The illegal state still exists in the model; it is merely
// detected earlier. A spanner with both fields set remains constructible
// and ambiguous. The parent tool package is the model that finally
// removes both states.
package checked

import (
	"errors"

	"github.com/fennwick/torq/pkg/tool"
)

// ErrUnsized is returned by New when neither Size nor MaxSize is given.
var ErrUnsized = errors.New("checked: spanner needs at least one of size or max_size")

// Options carries the constructor arguments for New.
type Options struct {
	Length  float64
	Mass    float64
	Size    *float64
	MaxSize *float64
}

// Spanner is a validated spanner. Values are only obtainable through New
// or Must, so the neither-set state cannot survive construction.
type Spanner struct {
	length  float64
	mass    float64
	size    *float64
	maxSize *float64
}

// New builds a Spanner, rejecting the neither-set state. Both-set is
// accepted; see Fits for how it is resolved.
func New(opts Options) (*Spanner, error) {
	if opts.Size == nil && opts.MaxSize == nil {
		return nil, ErrUnsized
	}
	return &Spanner{
		length:  opts.Length,
		mass:    opts.Mass,
		size:    opts.Size,
		maxSize: opts.MaxSize,
	}, nil
}

// Must is New but panics on invalid options. For initialization paths
// where an invalid spanner is a programming error.
func Must(opts Options) *Spanner {
	s, err := New(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the fixed jaw width and whether it is set.
func (s *Spanner) Size() (float64, bool) {
	if s.size == nil {
		return 0, false
	}
	return *s.size, true
}

// MaxSize returns the largest jaw opening and whether it is set.
func (s *Spanner) MaxSize() (float64, bool) {
	if s.maxSize == nil {
		return 0, false
	}
	return *s.maxSize, true
}

// Length returns the handle length in mm.
func (s *Spanner) Length() float64 { return s.length }

// Mass returns the mass in kg.
func (s *Spanner) Mass() float64 { return s.mass }

// Fits reports whether the spanner grips the nut. When both sizes are
// set the fixed size wins; that preference is observed behavior carried
// over from the first-match checker, not a contract.
func Fits(s *Spanner, n tool.Nut) bool {
	if s.size != nil {
		return tool.Default.Close(*s.size, n.Size)
	}
	return *s.maxSize >= n.Size
}
