package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/linear/linear-release/pkg/domain/model"
	"github.com/linear/linear-release/pkg/infra/notify"
)

func TestSlackNotifier_NotifySync(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		gt.NoError(t, err)
		gt.NoError(t, json.Unmarshal(body, &gotPayload))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	notifier := notify.NewSlack(server.URL)
	err := notifier.NotifySync(context.Background(),
		&model.ReleaseSync{
			Version:   "v2.1.0",
			CommitSHA: "abc123",
			AddedIssues: []model.IssueReference{
				{Identifier: "ENG-1", CommitSHA: "abc123"},
				{Identifier: "PLAT-2", CommitSHA: "abc123"},
			},
			PullRequestNumbers: []int{10, 11},
		},
		&model.ReleaseSyncResult{ReleaseID: "rel_1", Created: true},
	)

	gt.NoError(t, err)
	text, ok := gotPayload["text"].(string)
	gt.V(t, ok).Equal(true)
	gt.V(t, strings.Contains(text, "v2.1.0")).Equal(true)
	gt.V(t, strings.Contains(text, "created")).Equal(true)

	attachments, ok := gotPayload["attachments"].([]any)
	gt.V(t, ok).Equal(true)
	gt.A(t, attachments).Length(1)
}

func TestSlackNotifier_WebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := notify.NewSlack(server.URL)
	err := notifier.NotifySync(context.Background(),
		&model.ReleaseSync{Version: "v1"},
		&model.ReleaseSyncResult{},
	)
	gt.Error(t, err)
}
