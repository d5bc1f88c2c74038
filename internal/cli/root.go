package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess       = 0
	ExitNotRepository = 1
	ExitUsageError    = 2
	ExitRuntimeError  = 4
)

// Global flags
var (
	flagFormat   string
	flagGitBin   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "snapdiff",
	Short: "Review changed images in a git working copy",
	Long: "Snapdiff lists image files with pending changes, browses commit history, " +
		"and retrieves image content at any revision for side-by-side comparison.",
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print snapdiff version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "snapdiff version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	pf.StringVar(&flagGitBin, "git-bin", "", "Path to the git executable")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(changesCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
