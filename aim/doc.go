// Package aim provides the adaptive Monte-Carlo aim-point optimizer for
// caddie-sim: given a shot start, a pin, and a terrain-class raster, it
// recommends where to aim by minimizing expected strokes-to-hole-out.
//
// # Reading Guide
//
// Start with these three files to understand the search kernel:
//   - stats.go: the Welford accumulator driving adaptive stopping
//   - evaluator.go: the expected-strokes Monte-Carlo pass and its stop rule
//   - optimizer.go: the Cross-Entropy-Method loop over aim candidates
//
// # Architecture
//
// The aim package owns the interfaces and value types; collaborators live
// in sub-packages:
//   - aim/dispersion/: low-discrepancy dispersion-cloud generation and the
//     default Feeds wiring
//   - aim/maskpng/: PNG-backed raster mask loading (registers itself via
//     NewMaskLoaderFunc)
//   - aim/runner/: job table and message-passing run orchestration
//   - aim/trace/: per-iteration and per-candidate decision recording
//
// # Key Extension Points
//
//   - Feeds: the five collaborator functions a search consumes (feasibility,
//     polar conversion, ellipse axes, cloud generation, terrain lookup)
//   - MaskLoader: raster decoding behind the TerrainSampler lifecycle
//   - StrokesModel: per-condition expected-strokes cost curves
//
// Determinism: every stochastic draw flows through PartitionedRNG, so a
// SearchKey plus a config reproduces a run bit-for-bit.
package aim
