// Package viz draws bonsai trees into an in-memory grid and renders them
// with lipgloss themes.
//
//   - [Grid]: character canvas the growth engine writes into
//   - [Render], [Compose]: styled output with an optional message box
//   - [LiveModel]: Bubble Tea viewer that shows trees as they grow
//
// # Key Bindings
//
//	Q - Quit, finishing the tree in progress
//	N - Finish the current tree and start the next one
//	T - Cycle color themes
//	S - Toggle the stats panel
package viz
