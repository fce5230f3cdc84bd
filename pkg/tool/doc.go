// Package tool models hand tools and fasteners so that invalid tool
// descriptions cannot be constructed. A Spanner is a closed set of two
// variants: a single-ended spanner knows the one nut size it grips, an
// adjustable spanner knows only the largest size its jaw opens to. There
// is no representable spanner with neither or both.
//
// The subpackages flat, loose, and checked preserve the earlier designs
// this model replaced, in order of increasing strictness.
package tool
