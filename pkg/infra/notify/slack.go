package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
)

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a Notifier that posts a sync summary to a Slack
// incoming webhook.
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

// NotifySync posts a short summary of the completed release sync.
func (n *slackNotifier) NotifySync(ctx context.Context, sync *model.ReleaseSync, result *model.ReleaseSyncResult) error {
	action := "updated"
	if result.Created {
		action = "created"
	}

	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Release %s %s", sync.Version, action),
		Attachments: []slack.Attachment{
			{
				Color: "#5E6AD2",
				Fields: []slack.AttachmentField{
					{Title: "Issues linked", Value: fmt.Sprintf("%d", len(sync.AddedIssues)), Short: true},
					{Title: "Issues unlinked", Value: fmt.Sprintf("%d", len(sync.RevertedIssues)), Short: true},
					{Title: "Pull requests", Value: fmt.Sprintf("%d", len(sync.PullRequestNumbers)), Short: true},
					{Title: "Head commit", Value: sync.CommitSHA, Short: true},
				},
				Footer: "linear-release",
			},
		},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack webhook")
	}
	return nil
}
