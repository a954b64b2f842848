// Package viz provides the terminal front end for the charge simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live simulation view with mouse spawning
//   - [Canvas]: Braille-based pixel canvas with per-cell ink and heat shading
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Left click  - Spawn proton
//	Right click - Spawn electron
//	Middle / M  - Flip the interaction coefficient
//	Backspace   - Remove the newest particle
//	Enter       - Remove all particles
//	F / P       - Toggle field arrows / potential heatmap
//	Space       - Pause/Resume simulation
//	T           - Cycle color themes
//	?           - Show help overlay
package viz
