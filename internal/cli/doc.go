// Package cli wires together the Cobra command tree for the snapdiff binary.
//
// It defines the root command and all subcommands (validate, changes, commits,
// show, serve, config, version), binds flags, reads configuration, invokes the
// git client, and maps outcomes to exit codes.
package cli
