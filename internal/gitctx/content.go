package gitctx

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// HeadRevision addresses the currently checked-out commit.
const HeadRevision = "HEAD"

// FileContent is a file's bytes at a revision, base64 encoded, with enough
// metadata for a viewer to render it.
type FileContent struct {
	Path     string `json:"path"`
	Revision string `json:"revision"`
	MIMEType string `json:"mime_type"`
	Size     int    `json:"size"`
	Data     string `json:"data"`
}

// DataURL renders the content as a data: URL.
func (c FileContent) DataURL() string {
	return "data:" + c.MIMEType + ";base64," + c.Data
}

// Encode returns b in the standard base64 alphabet.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// GetFileAtHead returns filePath as committed at HEAD, base64 encoded.
func (c *Client) GetFileAtHead(ctx context.Context, repoPath, filePath string) (string, error) {
	b, err := c.show(ctx, repoPath, filePath, HeadRevision)
	if err != nil {
		return "", err
	}
	return Encode(b), nil
}

// GetFileAtCommit returns filePath as it existed at commitID, base64 encoded.
func (c *Client) GetFileAtCommit(ctx context.Context, repoPath, filePath, commitID string) (string, error) {
	b, err := c.show(ctx, repoPath, filePath, commitID)
	if err != nil {
		return "", err
	}
	return Encode(b), nil
}

// GetFileContent is GetFileAtCommit with MIME type and size attached. An
// empty rev means HEAD.
func (c *Client) GetFileContent(ctx context.Context, repoPath, filePath, rev string) (FileContent, error) {
	if rev == "" {
		rev = HeadRevision
	}
	b, err := c.show(ctx, repoPath, filePath, rev)
	if err != nil {
		return FileContent{}, err
	}
	return FileContent{
		Path:     filePath,
		Revision: rev,
		MIMEType: MIMEType(filePath),
		Size:     len(b),
		Data:     Encode(b),
	}, nil
}

// GetFileInWorktree reads the current on-disk version of filePath, base64
// encoded. It does not run git.
func (c *Client) GetFileInWorktree(repoPath, filePath string) (string, error) {
	if err := requireRepoPath(repoPath); err != nil {
		return "", err
	}
	if !filepath.IsLocal(filepath.FromSlash(filePath)) {
		return "", pathNotFound("file path is not inside the repository: %s", filePath)
	}
	b, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(filePath)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", pathNotFound("file does not exist in working tree: %s", filePath)
		}
		return "", errors.Wrapf(err, "reading %s", filePath)
	}
	return Encode(b), nil
}

// show runs `git show <rev>:<path>` and returns the raw blob.
func (c *Client) show(ctx context.Context, repoPath, filePath, rev string) ([]byte, error) {
	if err := requireRepoPath(repoPath); err != nil {
		return nil, err
	}
	// git would parse a leading dash as an option, e.g. --output=<file>.
	if strings.HasPrefix(rev, "-") {
		return nil, errors.Mark(errors.Newf("invalid revision: %q", rev), ErrFileNotAtRevision)
	}
	res, err := c.runner.Run(ctx, repoPath, "show", rev+":"+filePath)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		var msg error
		if rev == HeadRevision {
			msg = errors.Newf("file does not exist at HEAD: %s", diagnostic(res))
		} else {
			msg = errors.Newf("file does not exist at commit %s: %s", rev, diagnostic(res))
		}
		return nil, errors.Mark(msg, ErrFileNotAtRevision)
	}
	c.log.Debug("fetched blob",
		zap.String("rev", rev),
		zap.String("path", filePath),
		zap.Int("bytes", len(res.Stdout)))
	return res.Stdout, nil
}
