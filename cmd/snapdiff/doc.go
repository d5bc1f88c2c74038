// Snapdiff is a CLI and GUI bridge for reviewing changed images in a git
// working copy.
//
// It lists image files with pending changes, browses commit history, and
// retrieves image content at HEAD or any commit as base64 for side-by-side
// comparison.
//
// Usage:
//
//	snapdiff validate [path]              # check for a working copy root
//	snapdiff changes [repo]               # list changed images
//	snapdiff commits [repo] --limit 10    # list recent commits
//	snapdiff show img/logo.png --rev HEAD # print base64 content
//	snapdiff serve                        # JSON lines on stdin/stdout
package main
