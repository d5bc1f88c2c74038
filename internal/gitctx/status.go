package gitctx

import (
	"strings"
)

// FileStatus is the semantic state of a changed image.
type FileStatus string

const (
	StatusModified FileStatus = "modified"
	StatusAdded    FileStatus = "added"
	StatusDeleted  FileStatus = "deleted"
)

// ChangedFile is one image asset with a pending change.
type ChangedFile struct {
	Path     string     `json:"path"`
	Filename string     `json:"filename"`
	Status   FileStatus `json:"status"`
}

// statusCodes maps a trimmed porcelain code to its semantic status. Codes
// missing from the table drop the line. Renames collapse to modified.
var statusCodes = map[string]FileStatus{
	"M":  StatusModified,
	"MM": StatusModified,
	"A":  StatusAdded,
	"AM": StatusAdded,
	"D":  StatusDeleted,
	"??": StatusAdded,
	"R":  StatusModified,
}

// ParseStatus converts `git status --porcelain` output into changed image
// files. Lines that are too short, name a non-image path, or carry an
// unrecognized code are skipped.
func ParseStatus(out string) []ChangedFile {
	files := []ChangedFile{}
	for _, line := range splitLines(out) {
		if len(line) < 3 {
			continue
		}
		code := line[:2]
		filePath := strings.TrimSpace(line[3:])

		if !IsImageFile(filePath) {
			continue
		}
		status, ok := statusCodes[strings.TrimSpace(code)]
		if !ok {
			continue
		}

		files = append(files, ChangedFile{
			Path:     filePath,
			Filename: baseName(filePath),
			Status:   status,
		})
	}
	return files
}

// baseName returns the final slash-separated segment of p, or p itself when
// there is no separator. Git reports paths with forward slashes on every
// platform, so filepath.Base is not used here.
func baseName(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 || i == len(p)-1 {
		return p
	}
	return p[i+1:]
}

// splitLines splits on \n and drops a trailing \r from each line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
