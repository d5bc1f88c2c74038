package output

import (
	"fmt"
	"io"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// Writer renders query results in a specific format.
type Writer interface {
	Validation(w io.Writer, path string, valid bool) error
	Changes(w io.Writer, files []gitctx.ChangedFile) error
	Commits(w io.Writer, commits []gitctx.CommitInfo) error
	Content(w io.Writer, content gitctx.FileContent) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text", "":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
