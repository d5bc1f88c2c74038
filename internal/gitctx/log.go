package gitctx

import (
	"strings"
)

// logFormat emits hash, short hash, subject, author name and author date
// joined by logDelimiter. %s is the first line of the message only.
const (
	logDelimiter = "|"
	logFormat    = "--format=%H|%h|%s|%an|%ai"
	logFields    = 5
)

// CommitInfo is one historical commit.
type CommitInfo struct {
	Hash      string `json:"hash"`
	ShortHash string `json:"short_hash"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Date      string `json:"date"`
}

// ParseLog converts output produced with logFormat into commits, preserving
// input order. A line that does not split into exactly five fields is dropped.
//
// The split stops after the fourth delimiter, so a '|' in the date field
// survives, but one in the author name shifts the remaining fields.
func ParseLog(out string) []CommitInfo {
	commits := []CommitInfo{}
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, logDelimiter, logFields)
		if len(parts) != logFields {
			continue
		}
		commits = append(commits, CommitInfo{
			Hash:      parts[0],
			ShortHash: parts[1],
			Message:   parts[2],
			Author:    parts[3],
			Date:      parts[4],
		})
	}
	return commits
}
