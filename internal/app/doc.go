// Package app wires application dependencies for the CLI.
//
// It loads config.yaml into unset flags, lays out the home directory and
// builds the concrete stores, runtime client factory, local runner and
// high-level services from Config, exposing them via the Wire struct for
// commands to use.
package app
