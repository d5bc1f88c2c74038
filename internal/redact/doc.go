// Package redact scrubs credentials out of git diagnostics before they reach
// the presentation layer.
//
// git echoes remote URLs and credential-helper chatter on stderr when a
// command fails. Detection uses regex heuristics covering URL userinfo,
// key=value credentials, Authorization headers, bearer tokens and common
// provider token shapes (GitHub, GitLab, AWS).
package redact
