package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
)

// DefaultEndpoint is the public Linear GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

const releaseSyncMutation = `mutation ReleaseSync($input: ReleaseSyncInput!) {
  releaseSync(input: $input) {
    release { id }
    created
  }
}`

type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// Option is a functional option for the Linear client.
type Option func(*client)

// WithEndpoint overrides the GraphQL endpoint, mainly for tests.
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Linear API client authenticated with a personal or
// OAuth API key.
func New(apiKey string, opts ...Option) interfaces.ReleaseClient {
	c := &client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphqlRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type releaseSyncResponse struct {
	Data struct {
		ReleaseSync struct {
			Release struct {
				ID string `json:"id"`
			} `json:"release"`
			Created bool `json:"created"`
		} `json:"releaseSync"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// SyncRelease creates or updates the release on Linear, linking added
// issues and unlinking reverted ones.
func (c *client) SyncRelease(ctx context.Context, sync *model.ReleaseSync) (*model.ReleaseSyncResult, error) {
	logger := ctxlog.From(ctx)

	body, err := json.Marshal(graphqlRequest{
		Query: releaseSyncMutation,
		Variables: map[string]any{
			"input": sync,
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal releaseSync request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create releaseSync request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Linear API", goerr.V("endpoint", c.endpoint))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read Linear API response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from Linear API",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}

	var parsed releaseSyncResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse Linear API response",
			goerr.V("body", string(respBody)))
	}

	if len(parsed.Errors) > 0 {
		return nil, goerr.New("Linear API returned errors",
			goerr.V("message", parsed.Errors[0].Message),
			goerr.V("count", len(parsed.Errors)))
	}

	logger.Debug("releaseSync accepted",
		"release_id", parsed.Data.ReleaseSync.Release.ID,
		"created", parsed.Data.ReleaseSync.Created,
	)

	return &model.ReleaseSyncResult{
		ReleaseID: parsed.Data.ReleaseSync.Release.ID,
		Created:   parsed.Data.ReleaseSync.Created,
	}, nil
}
