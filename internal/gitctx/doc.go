// Package gitctx inspects a git working copy for the image-diff reviewer.
//
// It shells out to git through a [Runner] and turns the machine-readable
// output into typed records: [ParseStatus] converts `git status --porcelain`
// into [ChangedFile] values filtered to image assets, and [ParseLog] converts
// the pipe-delimited `git log` format into [CommitInfo] values, newest first.
//
// [Client] exposes the five operations a presentation layer needs: validate a
// repository, list changed images, list commits, and fetch a file at HEAD or
// at a commit as base64. Failures carry an [ErrorKind] recoverable with
// [KindOf].
package gitctx
