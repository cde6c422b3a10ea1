// Package commands defines the identctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen root|longterm|messaging  Create the local keyrings
//   - server issue                    Issue a transit server self-ident
//   - person issue                    Issue a person self-ident
//   - vouch                           Issue an other-person ident
//   - verify server|person|other      Verify an identity blob
//   - peek                            Print a blob's payload without verifying it
//   - fingerprint                     Print root and longterm key fingerprints
//
// # Implementation
//
// The root command loads Config, builds the logger and the dependency graph
// (stores, metrics, services) before any subcommand runs, so handlers share
// one app context. Blob files hold a single line of base64.
package commands
