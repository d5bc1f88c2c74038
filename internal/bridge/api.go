package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// API exposes the reviewer's git queries to a presentation layer. Method
// names follow the command names the GUI host invokes.
type API struct {
	client *gitctx.Client
	log    *zap.Logger
}

func NewAPI(client *gitctx.Client, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{client: client, log: logger}
}

func (a *API) ValidateGitRepo(path string) (bool, error) {
	return a.client.ValidateRepository(path)
}

func (a *API) GetChangedFiles(ctx context.Context, repoPath string) ([]gitctx.ChangedFile, error) {
	return a.client.ListChangedImages(ctx, repoPath)
}

func (a *API) GetFileAtHead(ctx context.Context, repoPath, filePath string) (string, error) {
	return a.client.GetFileAtHead(ctx, repoPath, filePath)
}

func (a *API) GetCommits(ctx context.Context, repoPath string, limit int) ([]gitctx.CommitInfo, error) {
	return a.client.ListCommits(ctx, repoPath, limit)
}

func (a *API) GetFileAtCommit(ctx context.Context, repoPath, filePath, commitHash string) (string, error) {
	return a.client.GetFileAtCommit(ctx, repoPath, filePath, commitHash)
}

// GetFileInWorktree reads the uncommitted side of a comparison from disk.
func (a *API) GetFileInWorktree(repoPath, filePath string) (string, error) {
	return a.client.GetFileInWorktree(repoPath, filePath)
}
