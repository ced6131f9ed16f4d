// Package commands defines the quantumtie CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - (root)          Run the demo: submit the circuit and animate results
//   - env             Print the detected environment
//   - account save    Store runtime credentials
//   - account show    List stored accounts
//   - account delete  Remove a stored account
//   - models update   Fetch and cache backend noise models
//   - models list     Show cached noise models
//
// # Implementation
//
// The root command reads config.yaml from the home directory into any flag
// not given on the command line, then builds the dependency graph (stores,
// services, runtime client, local runner) before any command runs. Legacy
// single-dash arguments (-tee, -b:least, 16, ...) are rewritten into flags
// before parsing.
package commands
