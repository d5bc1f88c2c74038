// Package output formats query results for display or machine consumption.
//
// Three formats are supported:
//   - text: human-readable terminal listings (default), status colored with lipgloss
//   - json: indented JSON with the same field names as the bridge protocol
//   - markdown: PR-comment-friendly tables with collapsible sections
//
// Use [GetWriter] to obtain a [Writer] for a given format string.
package output
