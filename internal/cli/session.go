package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/snapdiff/internal/config"
	"github.com/dshills/snapdiff/internal/gitctx"
	"github.com/dshills/snapdiff/internal/logging"
	"github.com/dshills/snapdiff/internal/output"
)

// session bundles what a command needs once configuration is resolved.
type session struct {
	cfg     config.Config
	log     *zap.Logger
	cleanup func()
	client  *gitctx.Client
	out     output.Writer
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagGitBin != "" {
		m["gitBin"] = flagGitBin
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

// newSession loads configuration and builds the logger and git client.
// Errors returned here are usage errors.
func newSession() (*session, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return nil, err
	}
	out, err := output.GetWriter(cfg.Format)
	if err != nil {
		return nil, err
	}
	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "creating logger")
	}
	runner := gitctx.NewExecRunner(cfg.GitBin, logger)
	client := gitctx.New(runner,
		gitctx.WithLogger(logger),
		gitctx.WithCommitLimit(cfg.CommitLimit))
	return &session{cfg: cfg, log: logger, cleanup: cleanup, client: client, out: out}, nil
}

// close flushes the logger and releases the log file.
func (s *session) close() {
	s.cleanup()
}

// fail reports err on stderr and sets the runtime exit code.
func fail(cmd *cobra.Command, err error) {
	if kind := gitctx.KindOf(err); kind != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error (%s): %v\n", kind, err)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	exitCode = ExitRuntimeError
}

// repoArg returns the optional repository argument, defaulting to ".".
func repoArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
