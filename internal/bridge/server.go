package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/dshills/snapdiff/internal/gitctx"
)

// Command names accepted on the wire.
const (
	CmdValidateGitRepo   = "validate_git_repo"
	CmdGetChangedFiles   = "get_changed_files"
	CmdGetFileAtHead     = "get_file_at_head"
	CmdGetCommits        = "get_commits"
	CmdGetFileAtCommit   = "get_file_at_commit"
	CmdGetFileInWorktree = "get_file_in_worktree"
)

// KindBadRequest marks malformed requests and unknown commands.
const KindBadRequest = "BadRequest"

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// Request is one line of input.
type Request struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response is one line of output. Exactly one of Result or Error is set.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	OK     bool            `json:"ok"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Kind   string          `json:"kind,omitempty"`
}

// Args carries every argument any command takes. Field names match what the
// GUI host sends.
type Args struct {
	Path       string `json:"path"`
	RepoPath   string `json:"repoPath"`
	FilePath   string `json:"filePath"`
	CommitHash string `json:"commitHash"`
	Limit      *int   `json:"limit"`
}

// limit returns the requested commit limit, or -1 for the configured default
// when the host sent none.
func (a Args) limit() int {
	if a.Limit == nil {
		return -1
	}
	return *a.Limit
}

// Server answers line-delimited JSON requests against an API.
type Server struct {
	api *API
	log *zap.Logger
}

func NewServer(api *API, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{api: api, log: logger.Named("bridge")}
}

// Serve reads requests from r until EOF or ctx is done, writing one response
// line to w per request. Requests are handled one at a time in arrival order.
//
// Serve returns as soon as ctx is done, even while blocked waiting for input.
// The reading goroutine then exits once r returns.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go s.readLines(ctx, r, lines, readErr)

	enc := json.NewEncoder(w)
	for {
		var line []byte
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return errors.Wrap(err, "reading requests")
				}
				return ctx.Err()
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		var resp Response
		if err := json.Unmarshal(line, &req); err != nil {
			resp = badRequest(nil, fmt.Sprintf("malformed request: %v", err))
		} else {
			resp = s.Handle(ctx, req)
		}
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "writing response")
		}
	}
}

// readLines sends each non-blank line of r on lines, then reports the scan
// error on readErr and closes lines.
func (s *Server) readLines(ctx context.Context, r io.Reader, lines chan<- []byte, readErr chan<- error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	defer close(lines)

	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		line := bytes.Clone(scanner.Bytes())
		select {
		case lines <- line:
		case <-ctx.Done():
			readErr <- nil
			return
		}
	}
	readErr <- scanner.Err()
}

// Handle dispatches a single request.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	var args Args
	if len(req.Args) > 0 {
		if err := json.Unmarshal(req.Args, &args); err != nil {
			return badRequest(req.ID, fmt.Sprintf("malformed args for %s: %v", req.Command, err))
		}
	}
	s.log.Debug("request", zap.String("command", req.Command))

	var (
		result any
		err    error
	)
	switch req.Command {
	case CmdValidateGitRepo:
		result, err = s.api.ValidateGitRepo(args.Path)
	case CmdGetChangedFiles:
		result, err = s.api.GetChangedFiles(ctx, args.RepoPath)
	case CmdGetFileAtHead:
		result, err = s.api.GetFileAtHead(ctx, args.RepoPath, args.FilePath)
	case CmdGetCommits:
		result, err = s.api.GetCommits(ctx, args.RepoPath, args.limit())
	case CmdGetFileAtCommit:
		result, err = s.api.GetFileAtCommit(ctx, args.RepoPath, args.FilePath, args.CommitHash)
	case CmdGetFileInWorktree:
		result, err = s.api.GetFileInWorktree(args.RepoPath, args.FilePath)
	default:
		return badRequest(req.ID, fmt.Sprintf("unknown command: %q", req.Command))
	}

	if err != nil {
		s.log.Debug("request failed", zap.String("command", req.Command), zap.Error(err))
		return Response{ID: req.ID, Error: err.Error(), Kind: string(gitctx.KindOf(err))}
	}
	return Response{ID: req.ID, OK: true, Result: result}
}

func badRequest(id json.RawMessage, msg string) Response {
	return Response{ID: id, Error: msg, Kind: KindBadRequest}
}
