package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// JSONWriter outputs results as indented JSON using the same field names the
// bridge uses on the wire.
type JSONWriter struct{}

// ValidationResult is the JSON shape of a validate query.
type ValidationResult struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
}

func (j *JSONWriter) Validation(w io.Writer, path string, valid bool) error {
	return writeJSON(w, ValidationResult{Path: path, Valid: valid})
}

func (j *JSONWriter) Changes(w io.Writer, files []gitctx.ChangedFile) error {
	if files == nil {
		files = []gitctx.ChangedFile{}
	}
	return writeJSON(w, files)
}

func (j *JSONWriter) Commits(w io.Writer, commits []gitctx.CommitInfo) error {
	if commits == nil {
		commits = []gitctx.CommitInfo{}
	}
	return writeJSON(w, commits)
}

func (j *JSONWriter) Content(w io.Writer, content gitctx.FileContent) error {
	return writeJSON(w, content)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
