package gitctx

import (
	"github.com/cockroachdb/errors"

	"github.com/dshills/snapdiff/internal/redact"
)

// ErrorKind classifies a failure surfaced to the presentation layer.
type ErrorKind string

const (
	KindPathNotFound      ErrorKind = "PathNotFound"
	KindSpawnFailure      ErrorKind = "SpawnFailure"
	KindCommandFailure    ErrorKind = "CommandFailure"
	KindFileNotAtRevision ErrorKind = "FileNotAtRevision"
)

// Sentinels used as marks. Match with errors.Is.
var (
	ErrPathNotFound      = errors.New("path not found")
	ErrSpawnFailure      = errors.New("git could not be started")
	ErrCommandFailure    = errors.New("git command failed")
	ErrFileNotAtRevision = errors.New("file not at revision")
)

// KindOf reports the kind of err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPathNotFound):
		return KindPathNotFound
	case errors.Is(err, ErrSpawnFailure):
		return KindSpawnFailure
	case errors.Is(err, ErrFileNotAtRevision):
		return KindFileNotAtRevision
	case errors.Is(err, ErrCommandFailure):
		return KindCommandFailure
	default:
		return ""
	}
}

func pathNotFound(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrPathNotFound)
}

// commandFailure builds a CommandFailure whose message ends with git's stderr.
func commandFailure(what string, res Result) error {
	return errors.Mark(errors.Newf("%s failed: %s", what, diagnostic(res)), ErrCommandFailure)
}

func diagnostic(res Result) string {
	return redact.Diagnostic(res.Stderr)
}
