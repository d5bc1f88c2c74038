package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/snapdiff/internal/bridge"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer JSON requests from a GUI host on stdin/stdout",
	Long: "Serve reads one JSON request per line from stdin and writes one JSON " +
		"response per line to stdout until stdin closes. Logs go to stderr.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := bridge.NewServer(bridge.NewAPI(s.client, s.log), s.log)
		s.log.Info("bridge started", zap.String("gitBin", s.cfg.GitBin))
		err = srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil && !errors.Is(err, context.Canceled) {
			fail(cmd, errors.Wrap(err, "bridge"))
			return nil
		}
		s.log.Info("bridge stopped")
		return nil
	},
}
