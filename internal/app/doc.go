// Package app wires application dependencies for the CLI.
//
// It loads Config from YAML and the environment, builds the logger, the key
// store, the crypto provider and the fingerprint service, and exposes them
// via the Wire struct for commands to use.
package app
