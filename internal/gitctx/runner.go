package gitctx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Result is the captured outcome of one git invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether git exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes git with args in dir and waits for it to exit.
//
// A non-zero exit is reported through the Result, not as an error. The error
// return is reserved for git failing to start (ErrSpawnFailure) or the
// context being cancelled.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner runs the configured git binary as a subprocess.
type ExecRunner struct {
	GitBin string
	log    *zap.Logger
}

// NewExecRunner returns a runner for gitBin, falling back to "git" when empty.
func NewExecRunner(gitBin string, logger *zap.Logger) *ExecRunner {
	if strings.TrimSpace(gitBin) == "" {
		gitBin = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{GitBin: gitBin, log: logger.Named("runner")}
}

func (e *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	// #nosec G204 -- args are assembled by this package, never shell interpolated
	cmd := exec.CommandContext(ctx, e.GitBin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, errors.Wrapf(ctxErr, "git %s", subcommand(args))
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.log.Debug("git failed to start",
				zap.String("bin", e.GitBin),
				zap.Strings("args", args),
				zap.String("dir", dir),
				zap.Error(err))
			return Result{}, errors.Mark(
				errors.Wrapf(err, "failed to run %s %s", e.GitBin, subcommand(args)),
				ErrSpawnFailure)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	e.log.Debug("git",
		zap.Strings("args", args),
		zap.String("dir", dir),
		zap.Int("exit", res.ExitCode),
		zap.Int("stdout_bytes", len(res.Stdout)),
		zap.Int("stderr_bytes", len(res.Stderr)))
	return res, nil
}

// subcommand names the git operation without leaking paths or revisions.
func subcommand(args []string) string {
	if len(args) == 0 {
		return "<no-args>"
	}
	return args[0]
}
