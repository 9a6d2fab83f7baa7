// Package viz renders cloth simulations in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker and parameter editor
//   - [LiveModel]: steps a cloth every frame and draws it
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Camera]: orbiting perspective camera with [Fit] for auto-framing
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Discard the cloth and rebuild it from its config
//	M     - Toggle the integration scheme
//	X/Y   - Rotate the camera
//	+/-   - Zoom
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// G starts capturing frames; pressing it again (or quitting) writes them
// to clothsim.gif in the current directory.
package viz
