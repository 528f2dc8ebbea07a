// Package control supplies the per-frame commands that drive a simulation.
//
// A [Source] is asked for a [Command] once per frame and sees an
// [Observation] of the player:
//
//   - [None]: no input (the player stands or falls)
//   - [Manual]: held keys and queued actions set by an interactive front end
//   - [Seek]: walks through waypoints, steering the camera with a [PID]
//   - [Wander]: seeded random input for soak runs and benchmarks
//
// # Usage
//
//	src := control.NewSeek([]mgl64.Vec3{{5, 0, 0}, {5, 0, 5}}, false)
//	res, err := s.Run(ctx, src, 10, 60)
package control
