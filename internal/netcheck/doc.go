// Package netcheck checks that the quantum service's web endpoint answers
// before the program commits to a remote run.
package netcheck
