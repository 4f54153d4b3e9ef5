package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/linear/linear-release/pkg/cli/config"
	"github.com/linear/linear-release/pkg/infra/gitlog"
	"github.com/linear/linear-release/pkg/usecase"
)

func cmdScan(loggerCfg *config.Logger) *cli.Command {
	var gitCfg config.Git

	return &cli.Command{
		Name:  "scan",
		Usage: "Classify a commit range and print the result as JSON (no remote calls)",
		Flags: gitCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			// Results go to stdout, so logs go to stderr.
			ctx, err := setupLogger(ctx, loggerCfg, os.Stderr)
			if err != nil {
				return err
			}

			git := gitlog.New()
			if err := git.EnsureCommit(ctx, gitCfg.RepoPath, gitCfg.BaseRef); err != nil {
				return goerr.Wrap(err, "failed to resolve base commit")
			}

			commits, err := git.Commits(ctx, gitCfg.LogOptions())
			if err != nil {
				return goerr.Wrap(err, "failed to collect commits")
			}

			result := usecase.NewScanner().Scan(ctx, commits, gitCfg.IncludePaths)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to encode scan result")
			}
			return nil
		},
	}
}
