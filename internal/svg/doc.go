// Package svg mirrors the latest result into HTML files that a browser on
// the same machine (or over a file share) can watch.
//
//   - qubits.html refreshes itself every 2.5s and embeds pixels.html.
//   - pixels.html holds an SVG drawing of the matrix and the pattern label.
//
// Colours are brightened so dim LED values stay visible on screen.
package svg
