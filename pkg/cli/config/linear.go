package config

import (
	"github.com/urfave/cli/v3"

	"github.com/linear/linear-release/pkg/infra/linear"
)

// Linear holds Linear API configuration
type Linear struct {
	APIKey   string `masq:"secret"`
	Endpoint string
}

// Flags returns CLI flags for Linear configuration
func (c *Linear) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Linear API key",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("LINEAR_RELEASE_API_KEY", "LINEAR_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "endpoint",
			Usage:       "Linear GraphQL endpoint",
			Value:       linear.DefaultEndpoint,
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("LINEAR_RELEASE_ENDPOINT"),
		},
	}
}
