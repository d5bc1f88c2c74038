package output

import (
	"io"
	"sort"
	"strings"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// MarkdownWriter outputs PR-comment-friendly markdown.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Validation(w io.Writer, path string, valid bool) error {
	ew := &errWriter{w: w}
	if valid {
		ew.printf("`%s` is a git repository. :white_check_mark:\n", path)
	} else {
		ew.printf("`%s` is not a git repository. :x:\n", path)
	}
	return ew.err
}

func (m *MarkdownWriter) Changes(w io.Writer, files []gitctx.ChangedFile) error {
	ew := &errWriter{w: w}
	ew.printf("## Changed Images\n\n")

	grouped := groupByStatus(files)

	// Summary table
	ew.printf("| Status | Count |\n")
	ew.printf("|--------|-------|\n")
	for _, s := range statusOrder {
		ew.printf("| %-8s | %d |\n", titleCase(string(s)), len(grouped[s]))
	}
	ew.printf("| **Total** | **%d** |\n\n", len(files))

	if len(files) == 0 {
		ew.println("No changed images. :white_check_mark:")
		return ew.err
	}

	// Collapsible sections by status
	for _, s := range statusOrder {
		group := grouped[s]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Path < group[j].Path })

		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n", mdStatusIcon(s), strings.ToUpper(string(s)), len(group))
		for _, f := range group {
			ew.printf("- `%s`\n", f.Path)
		}
		ew.printf("\n</details>\n\n")
	}
	return ew.err
}

func (m *MarkdownWriter) Commits(w io.Writer, commits []gitctx.CommitInfo) error {
	ew := &errWriter{w: w}
	ew.printf("## Commits\n\n")
	if len(commits) == 0 {
		ew.println("No commits.")
		return ew.err
	}

	ew.printf("| Commit | Date | Author | Message |\n")
	ew.printf("|--------|------|--------|---------|\n")
	for _, c := range commits {
		ew.printf("| `%s` | %s | %s | %s |\n", c.ShortHash, c.Date, mdEscape(c.Author), mdEscape(c.Message))
	}
	return ew.err
}

// Content embeds the file as an inline image so the comment renders it.
func (m *MarkdownWriter) Content(w io.Writer, content gitctx.FileContent) error {
	ew := &errWriter{w: w}
	ew.printf("### `%s` @ `%s`\n\n", content.Path, content.Revision)
	ew.printf("![%s](%s)\n\n", mdEscape(content.Path), content.DataURL())
	ew.printf("*%s, %d bytes*\n", content.MIMEType, content.Size)
	return ew.err
}

var statusOrder = []gitctx.FileStatus{gitctx.StatusModified, gitctx.StatusAdded, gitctx.StatusDeleted}

func groupByStatus(files []gitctx.ChangedFile) map[gitctx.FileStatus][]gitctx.ChangedFile {
	m := make(map[gitctx.FileStatus][]gitctx.ChangedFile)
	for _, f := range files {
		m[f.Status] = append(m[f.Status], f)
	}
	return m
}

func mdStatusIcon(s gitctx.FileStatus) string {
	switch s {
	case gitctx.StatusModified:
		return ":pencil2:"
	case gitctx.StatusAdded:
		return ":heavy_plus_sign:"
	case gitctx.StatusDeleted:
		return ":heavy_minus_sign:"
	default:
		return ":white_circle:"
	}
}

// mdEscape keeps table cells intact.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
