// Package inventory tracks named spanners and nuts and answers which
// tool can operate which fastener.
package inventory

import (
	"fmt"
	"sort"

	"github.com/fennwick/torq/pkg/tool"
)

// Inventory is a named collection of spanners and nuts. Names are unique
// within their kind.
type Inventory struct {
	spanners map[string]tool.Spanner
	nuts     map[string]tool.Nut
}

// New creates an empty Inventory.
func New() *Inventory {
	return &Inventory{
		spanners: make(map[string]tool.Spanner),
		nuts:     make(map[string]tool.Nut),
	}
}

// AddSpanner registers a spanner under a name.
func (inv *Inventory) AddSpanner(name string, s tool.Spanner) error {
	if name == "" {
		return fmt.Errorf("spanner name must not be empty")
	}
	if _, exists := inv.spanners[name]; exists {
		return fmt.Errorf("spanner %q already defined", name)
	}
	inv.spanners[name] = s
	return nil
}

// AddNut registers a nut under a name.
func (inv *Inventory) AddNut(name string, n tool.Nut) error {
	if name == "" {
		return fmt.Errorf("nut name must not be empty")
	}
	if _, exists := inv.nuts[name]; exists {
		return fmt.Errorf("nut %q already defined", name)
	}
	inv.nuts[name] = n
	return nil
}

// Spanner returns the spanner with the given name.
func (inv *Inventory) Spanner(name string) (tool.Spanner, bool) {
	s, ok := inv.spanners[name]
	return s, ok
}

// Nut returns the nut with the given name.
func (inv *Inventory) Nut(name string) (tool.Nut, bool) {
	n, ok := inv.nuts[name]
	return n, ok
}

// SpannerNames returns all spanner names in sorted order.
func (inv *Inventory) SpannerNames() []string {
	names := make([]string, 0, len(inv.spanners))
	for name := range inv.spanners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NutNames returns all nut names in sorted order.
func (inv *Inventory) NutNames() []string {
	names := make([]string, 0, len(inv.nuts))
	for name := range inv.nuts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of items.
func (inv *Inventory) Len() int {
	return len(inv.spanners) + len(inv.nuts)
}
