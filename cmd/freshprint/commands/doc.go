// Package commands defines the freshprint CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen    Create the local Ed25519 key pair
//   - pubkey    Print the stored public key as PEM
//   - issue     Mint a fingerprint valid for one hour
//   - verify    Check a fingerprint against a PEM public key
//   - inspect   Decode a fingerprint without verifying it
//   - serve     Run the HTTP verifier
//
// # Implementation
//
// The root command loads the YAML config and builds the dependency graph
// (key store, provider, fingerprint service, logger) before any subcommand
// runs. The --at flag pins the clock for reproducible issue/verify runs.
package commands
