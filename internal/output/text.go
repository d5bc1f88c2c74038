package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// textStyles are bound to a renderer for one destination, so color support
// is detected on the writer actually being written to.
type textStyles struct {
	modified lipgloss.Style
	added    lipgloss.Style
	deleted  lipgloss.Style
	hash     lipgloss.Style
	dim      lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		modified: r.NewStyle().Foreground(lipgloss.Color("3")),
		added:    r.NewStyle().Foreground(lipgloss.Color("2")),
		deleted:  r.NewStyle().Foreground(lipgloss.Color("1")),
		hash:     r.NewStyle().Foreground(lipgloss.Color("4")),
		dim:      r.NewStyle().Faint(true),
	}
}

// TextWriter outputs human-readable listings. Colors are dropped
// automatically when the destination is not a terminal.
type TextWriter struct{}

func (t *TextWriter) Validation(w io.Writer, path string, valid bool) error {
	ew := &errWriter{w: w}
	if valid {
		ew.printf("%s: git repository\n", path)
	} else {
		ew.printf("%s: not a git repository\n", path)
	}
	return ew.err
}

func (t *TextWriter) Changes(w io.Writer, files []gitctx.ChangedFile) error {
	ew := &errWriter{w: w}
	if len(files) == 0 {
		ew.println("No changed images.")
		return ew.err
	}

	st := newTextStyles(w)
	ew.printf("%d changed %s\n", len(files), plural(len(files), "image", "images"))
	for _, f := range files {
		ew.printf("  %s  %s\n", st.statusLabel(f.Status), f.Path)
	}
	return ew.err
}

func (t *TextWriter) Commits(w io.Writer, commits []gitctx.CommitInfo) error {
	ew := &errWriter{w: w}
	if len(commits) == 0 {
		ew.println("No commits.")
		return ew.err
	}

	st := newTextStyles(w)
	for _, c := range commits {
		ew.printf("%s  %s  %s  %s\n",
			st.hash.Render(c.ShortHash),
			st.dim.Render(c.Date),
			c.Author,
			c.Message)
	}
	return ew.err
}

// Content prints the base64 payload alone so it can be piped.
func (t *TextWriter) Content(w io.Writer, content gitctx.FileContent) error {
	ew := &errWriter{w: w}
	ew.println(content.Data)
	return ew.err
}

func (st textStyles) statusLabel(s gitctx.FileStatus) string {
	label := fmt.Sprintf("%-8s", s)
	switch s {
	case gitctx.StatusModified:
		return st.modified.Render(label)
	case gitctx.StatusAdded:
		return st.added.Render(label)
	case gitctx.StatusDeleted:
		return st.deleted.Render(label)
	default:
		return label
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
