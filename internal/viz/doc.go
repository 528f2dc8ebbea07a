// Package viz renders a running simulation in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one simulation driven by the keyboard
//   - [Canvas]: Braille-based pixel canvas, drawn top-down or through a
//     chase [Camera]
//   - a scene picker with a tunables screen, see [RunInteractive]
//
// # Key Bindings
//
//	w a s d - Walk relative to the camera, shifted to run
//	Space   - Jump
//	h / l   - Turn the camera
//	f       - Charge a throw, press again to release
//	Tab     - Cycle teleport targets, Enter to teleport
//	v       - Toggle top-down and chase views
//	p       - Pause/Resume
//	[ / ]   - Time travel through recent frames
//	t / g   - Cycle themes, toggle GIF recording
//
// Terminals report key presses but not releases, so a movement key stays
// held for a short while after each press.
//
// # Recording
//
// Sessions can be recorded as GIF animations with the g key. Recordings are
// saved to kinesim.gif in the current directory.
package viz
