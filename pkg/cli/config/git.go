package config

import (
	"github.com/urfave/cli/v3"

	"github.com/linear/linear-release/pkg/domain/model"
)

// Git holds the commit range configuration
type Git struct {
	RepoPath     string
	BaseRef      string
	HeadRef      string
	IncludePaths []string
}

// Flags returns CLI flags for git configuration
func (c *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Path to the git repository",
			Value:       ".",
			Destination: &c.RepoPath,
			Sources:     cli.EnvVars("LINEAR_RELEASE_REPO"),
		},
		&cli.StringFlag{
			Name:        "base",
			Usage:       "Base commit or ref (exclusive lower bound of the range)",
			Required:    true,
			Destination: &c.BaseRef,
			Sources:     cli.EnvVars("LINEAR_RELEASE_BASE"),
		},
		&cli.StringFlag{
			Name:        "head",
			Usage:       "Head commit or ref (defaults to HEAD)",
			Value:       "HEAD",
			Destination: &c.HeadRef,
			Sources:     cli.EnvVars("LINEAR_RELEASE_HEAD"),
		},
		&cli.StringSliceFlag{
			Name:        "include-paths",
			Usage:       "Pathspec globs limiting which commits count",
			Destination: &c.IncludePaths,
			Sources:     cli.EnvVars("LINEAR_RELEASE_INCLUDE_PATHS"),
		},
	}
}

// LogOptions converts the configuration into git-log options.
func (c *Git) LogOptions() model.LogOptions {
	return model.LogOptions{
		RepoPath:     c.RepoPath,
		BaseRef:      c.BaseRef,
		HeadRef:      c.HeadRef,
		IncludePaths: c.IncludePaths,
	}
}
