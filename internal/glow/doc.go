// Package glow renders the LED matrix in the background while the main loop
// submits and polls jobs.
//
// The main loop and the renderer share a State. The renderer reads a
// consistent Snapshot on every tick and draws one of:
//
//   - the static logo while a job is being submitted
//   - the rotating rainbow while a job is pending
//   - the measured pattern on the active layout once a result is in
//   - the power-off banner, followed by the configured power-off command
package glow
