// Package pitch provides the core stack-detection and array-pitch-estimation
// engine for pitchscan.
//
// # Reading Guide
//
// Start with these three files to understand the analysis kernel:
//   - rect.go: axis-aligned rectangle primitives and the layer table
//   - stack.go: via/metal stack matching (best-overlap and any-overlap policies)
//   - report.go: the CollectStacks → EstimateX → AssignColumns → EstimateY pipeline
//
// # Architecture
//
// The engine is a pure function from an in-memory rectangle table to a
// PitchReport. There is no I/O inside the analysis itself; CSV ingestion
// (table.go) and the YAML role mapping (roles.go) feed it, and the cmd
// package wraps it in a CLI.
//
// # Key Interfaces
//
// The extension points are small strategy interfaces with by-name
// constructors:
//   - MatchPolicy: decide which metal partners qualify a via as a stack
//   - Estimator: recover the dominant 1-D repeat distance from coordinates
//
// Robust estimation (mode-bin + median, ModeBinEstimator) resists sub-period
// aliasing from overlapping sub-arrays; the simple NearestGapEstimator is
// adequate for clean synthetic grids. Y pitch is always computed column-wise
// (columns.go) so laterally offset sub-arrays cannot contaminate it.
package pitch
