// Package backend chooses and builds the backend a demo run submits to.
//
// The choice follows the command-line parameters: a local FakeManila-style
// noisy runner by default, local Aer for wider circuits, local Aer with a
// cached or freshly fetched noise model, or a remote runtime backend
// (least busy or named).
package backend
