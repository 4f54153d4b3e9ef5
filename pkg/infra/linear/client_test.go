package linear_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/linear/linear-release/pkg/domain/model"
	"github.com/linear/linear-release/pkg/infra/linear"
)

func TestClient_SyncRelease(t *testing.T) {
	ctx := context.Background()

	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"releaseSync":{"release":{"id":"rel_123"},"created":true}}}`))
	}))
	defer server.Close()

	client := linear.New("lin_api_test", linear.WithEndpoint(server.URL))

	result, err := client.SyncRelease(ctx, &model.ReleaseSync{
		Version:   "v1.4.0",
		CommitSHA: "abc123",
		AddedIssues: []model.IssueReference{
			{Identifier: "ENG-123", CommitSHA: "abc123"},
		},
		PullRequestNumbers: []int{571},
	})

	gt.NoError(t, err)
	gt.V(t, result.ReleaseID).Equal("rel_123")
	gt.V(t, result.Created).Equal(true)

	gt.V(t, gotAuth).Equal("lin_api_test")
	gt.V(t, gotBody["query"]).NotEqual(nil)

	variables := gotBody["variables"].(map[string]any)
	input := variables["input"].(map[string]any)
	gt.V(t, input["version"]).Equal(any("v1.4.0"))
}

func TestClient_SyncRelease_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"release not found"}]}`))
	}))
	defer server.Close()

	client := linear.New("key", linear.WithEndpoint(server.URL))
	_, err := client.SyncRelease(context.Background(), &model.ReleaseSync{Version: "v1"})
	gt.Error(t, err)
}

func TestClient_SyncRelease_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	client := linear.New("bad-key", linear.WithEndpoint(server.URL))
	_, err := client.SyncRelease(context.Background(), &model.ReleaseSync{Version: "v1"})
	gt.Error(t, err)
}
