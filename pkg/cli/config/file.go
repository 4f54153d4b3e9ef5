package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is an optional TOML defaults file. Flags and environment
// variables always take precedence; the file only fills values that are
// still unset.
//
//	[linear]
//	endpoint = "https://api.linear.app/graphql"
//
//	[git]
//	repo = "."
//	include_paths = ["services/api/**"]
//
//	[notify]
//	slack_webhook = "https://hooks.slack.com/services/..."
type File struct {
	Linear struct {
		APIKey   string `toml:"api_key"`
		Endpoint string `toml:"endpoint"`
	} `toml:"linear"`
	Git struct {
		Repo         string   `toml:"repo"`
		IncludePaths []string `toml:"include_paths"`
	} `toml:"git"`
	Notify struct {
		SlackWebhook string `toml:"slack_webhook"`
	} `toml:"notify"`
}

// LoadFile parses the TOML defaults file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// Apply copies file values into the flag groups for any value the flags
// left unset.
func (f *File) Apply(linearCfg *Linear, gitCfg *Git, notifyCfg *Notify) {
	if linearCfg.APIKey == "" {
		linearCfg.APIKey = f.Linear.APIKey
	}
	if f.Linear.Endpoint != "" && linearCfg.Endpoint == "" {
		linearCfg.Endpoint = f.Linear.Endpoint
	}
	if f.Git.Repo != "" && (gitCfg.RepoPath == "" || gitCfg.RepoPath == ".") {
		gitCfg.RepoPath = f.Git.Repo
	}
	if len(gitCfg.IncludePaths) == 0 {
		gitCfg.IncludePaths = f.Git.IncludePaths
	}
	if notifyCfg.SlackWebhookURL == "" {
		notifyCfg.SlackWebhookURL = f.Notify.SlackWebhook
	}
}
