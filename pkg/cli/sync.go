package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/linear/linear-release/pkg/cli/config"
	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
	"github.com/linear/linear-release/pkg/infra/gitlog"
	"github.com/linear/linear-release/pkg/infra/linear"
	"github.com/linear/linear-release/pkg/infra/notify"
	"github.com/linear/linear-release/pkg/usecase"
)

func cmdSync(loggerCfg *config.Logger) *cli.Command {
	var (
		linearCfg  config.Linear
		gitCfg     config.Git
		notifyCfg  config.Notify
		version    string
		configPath string
	)

	flags := append(linearCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "release-version",
			Usage:       "Version label of the release being synced",
			Required:    true,
			Destination: &version,
			Sources:     cli.EnvVars("LINEAR_RELEASE_VERSION"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Optional TOML defaults file",
			Destination: &configPath,
			Sources:     cli.EnvVars("LINEAR_RELEASE_CONFIG"),
		},
	)

	return &cli.Command{
		Name:  "sync",
		Usage: "Scan the commit range and sync the outcome to Linear",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, err := setupLogger(ctx, loggerCfg, os.Stdout)
			if err != nil {
				return err
			}
			logger := ctxlog.From(ctx)

			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				file.Apply(&linearCfg, &gitCfg, &notifyCfg)
				logger.Debug("applied config file defaults", "path", configPath)
			}

			if linearCfg.APIKey == "" {
				return goerr.New("a Linear API key is required (--api-key or LINEAR_API_KEY)")
			}

			logger.Info("starting sync",
				"version", version,
				"linear", linearCfg,
			)

			var notifier interfaces.Notifier
			if notifyCfg.SlackWebhookURL != "" {
				notifier = notify.NewSlack(notifyCfg.SlackWebhookURL)
			}

			uc := usecase.NewSync(
				gitlog.New(),
				usecase.NewScanner(),
				linear.New(linearCfg.APIKey, linear.WithEndpoint(linearCfg.Endpoint)),
				notifier,
			)

			_, err = uc.Sync(ctx, &model.SyncInput{
				Version: version,
				Log:     gitCfg.LogOptions(),
			})
			return err
		},
	}
}
