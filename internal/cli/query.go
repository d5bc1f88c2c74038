package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/snapdiff/internal/gitctx"
)

var (
	flagLimit   int
	flagRepo    string
	flagRev     string
	flagRaw     bool
	flagDataURL bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check whether a directory is a git working copy root",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		path := repoArg(args)
		valid, err := s.client.ValidateRepository(path)
		if err != nil {
			fail(cmd, err)
			return nil
		}
		if err := s.out.Validation(cmd.OutOrStdout(), path, valid); err != nil {
			fail(cmd, errors.Wrap(err, "writing output"))
			return nil
		}
		if !valid {
			exitCode = ExitNotRepository
		}
		return nil
	},
}

var changesCmd = &cobra.Command{
	Use:   "changes [repo]",
	Short: "List image files with pending changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		files, err := s.client.ListChangedImages(cmd.Context(), repoArg(args))
		if err != nil {
			fail(cmd, err)
			return nil
		}
		if err := s.out.Changes(cmd.OutOrStdout(), files); err != nil {
			fail(cmd, errors.Wrap(err, "writing output"))
		}
		return nil
	},
}

var commitsCmd = &cobra.Command{
	Use:   "commits [repo]",
	Short: "List recent commits, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := -1
		if cmd.Flags().Changed("limit") {
			if flagLimit < 0 {
				return errors.Newf("--limit must not be negative, got %d", flagLimit)
			}
			limit = flagLimit
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		commits, err := s.client.ListCommits(cmd.Context(), repoArg(args), limit)
		if err != nil {
			fail(cmd, err)
			return nil
		}
		if err := s.out.Commits(cmd.OutOrStdout(), commits); err != nil {
			fail(cmd, errors.Wrap(err, "writing output"))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a file's content at a revision",
	Long: "Print a file's content at HEAD or at a given commit. By default the " +
		"content is base64 encoded; --raw writes the original bytes instead.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRaw && flagDataURL {
			return errors.New("--raw and --data-url are mutually exclusive")
		}
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		content, err := s.client.GetFileContent(cmd.Context(), flagRepo, args[0], flagRev)
		if err != nil {
			fail(cmd, err)
			return nil
		}

		w := cmd.OutOrStdout()
		switch {
		case flagRaw:
			b, err := base64.StdEncoding.DecodeString(content.Data)
			if err == nil {
				_, err = w.Write(b)
			}
			if err != nil {
				fail(cmd, errors.Wrap(err, "writing output"))
			}
		case flagDataURL:
			if _, err := fmt.Fprintln(w, content.DataURL()); err != nil {
				fail(cmd, errors.Wrap(err, "writing output"))
			}
		default:
			if err := s.out.Content(w, content); err != nil {
				fail(cmd, errors.Wrap(err, "writing output"))
			}
		}
		return nil
	},
}

func init() {
	commitsCmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of commits; 0 lists none (default from config)")

	showCmd.Flags().StringVar(&flagRepo, "repo", ".", "Repository path")
	showCmd.Flags().StringVar(&flagRev, "rev", gitctx.HeadRevision, "Revision to read the file at")
	showCmd.Flags().BoolVar(&flagRaw, "raw", false, "Write decoded bytes instead of base64")
	showCmd.Flags().BoolVar(&flagDataURL, "data-url", false, "Write a data: URL")
}
