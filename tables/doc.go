// Package tables reconstructs a rectangular table from scattered OCR text
// fragments using geometric heuristics.
//
// # Algorithm
//
// The [Reconstructor] uses a multi-step algorithm:
//
//  1. Row grouping: fragments are sorted by Y and clustered with a moving
//     mean, so slightly slanted rows still group together
//  2. Header-row selection: title rows above the table are skipped when
//     the caller names its expected columns
//  3. Column-zone construction: zone boundaries are the midpoints between
//     adjacent header fragment positions
//  4. Cell assignment: each fragment lands in the first zone containing
//     its X anchor; fragments sharing a zone are joined with spaces
//
// # Configuration
//
// Behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.YTolerance = 40
//	r := tables.NewReconstructor()
//	r.Configure(config)
//
// The clustering and zone math are pure functions ([GroupRows],
// [BuildZones]) over immutable inputs, usable independently of the
// Reconstructor.
package tables
