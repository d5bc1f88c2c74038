package gitctx

import (
	"context"
	"strconv"

	"go.uber.org/zap"
)

// DefaultCommitLimit caps ListCommits when the caller passes a negative limit.
const DefaultCommitLimit = 50

// Client runs the reviewer's git queries. It holds no per-repository state;
// every call is independent and may run concurrently with others.
type Client struct {
	runner      Runner
	log         *zap.Logger
	commitLimit int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCommitLimit sets the fallback limit for ListCommits.
func WithCommitLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.commitLimit = n
		}
	}
}

// New returns a Client that invokes git through runner.
func New(runner Runner, opts ...Option) *Client {
	c := &Client{
		runner:      runner,
		log:         zap.NewNop(),
		commitLimit: DefaultCommitLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateRepository reports whether path is a working copy root.
func (c *Client) ValidateRepository(path string) (bool, error) {
	return ValidateRepository(path)
}

// ListChangedImages returns the image files with pending changes in repoPath.
// A clean working copy yields an empty, non-nil slice.
func (c *Client) ListChangedImages(ctx context.Context, repoPath string) ([]ChangedFile, error) {
	if err := requireRepoPath(repoPath); err != nil {
		return nil, err
	}
	res, err := c.runner.Run(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, commandFailure("git status", res)
	}
	files := ParseStatus(string(res.Stdout))
	c.log.Debug("listed changed images", zap.String("repo", repoPath), zap.Int("count", len(files)))
	return files, nil
}

// ListCommits returns up to limit commits reachable from HEAD, newest first.
// A limit of zero yields no commits, as `git log -0` does. A negative limit
// falls back to the client's configured limit.
func (c *Client) ListCommits(ctx context.Context, repoPath string, limit int) ([]CommitInfo, error) {
	if err := requireRepoPath(repoPath); err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = c.commitLimit
	}
	res, err := c.runner.Run(ctx, repoPath, "log", "-"+strconv.Itoa(limit), logFormat)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, commandFailure("git log", res)
	}
	commits := ParseLog(string(res.Stdout))
	c.log.Debug("listed commits",
		zap.String("repo", repoPath),
		zap.Int("limit", limit),
		zap.Int("count", len(commits)))
	return commits, nil
}
