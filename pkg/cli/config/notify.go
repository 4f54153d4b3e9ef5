package config

import "github.com/urfave/cli/v3"

// Notify holds notification configuration
type Notify struct {
	SlackWebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook",
			Usage:       "Slack incoming webhook URL for sync summaries",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("LINEAR_RELEASE_SLACK_WEBHOOK"),
		},
	}
}
