// Package analysis inspects recorded trajectories.
//
// The package includes tools for characterizing how the player moved:
//
//   - [Summarize]: distance, height range and airtime of a run
//   - [Hops]: the airborne segments between leaving and regaining the floor
//   - [VerticalPortrait], [TrackPortrait]: 2D phase and ground-track plots
//   - [Crossings]: the points where the feet rise through a height
//   - [DominantFrequency]: the strongest period in a series, such as the
//     bounce of repeated jumps
//
// # Jump Rhythm
//
// Holding jump on flat ground produces a regular bounce whose period is the
// jump cooldown or the flight time, whichever is longer:
//
//	f := analysis.DominantFrequency(heights, fps)
//	period := 1 / f
package analysis
