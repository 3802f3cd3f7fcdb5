package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Slack posts the digest to an incoming webhook.
type Slack struct {
	webhookURL string
	maxItems   int
	client     *http.Client
}

func NewSlack(webhookURL string, maxItems int) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		maxItems:   maxItems,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks,omitempty"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Slack) Publish(ctx context.Context, res item.RunResult) error {
	body, err := json.Marshal(buildPayload(res, s.maxItems))
	if err != nil {
		return fmt.Errorf("encoding slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func buildPayload(res item.RunResult, maxItems int) slackPayload {
	header := fmt.Sprintf("📡 Support program radar — %d new announcement(s), %s",
		res.TotalCount, res.GeneratedAt.Format("2006-01-02"))

	p := slackPayload{
		Text: header,
		Blocks: []slackBlock{
			{Type: "header", Text: &slackText{Type: "plain_text", Text: header}},
		},
	}

	shown, more := digest(res, maxItems)
	for _, it := range shown {
		lines := []string{
			fmt.Sprintf("*<%s|%s>*", it.Link, it.Title),
			fmt.Sprintf("_%s_ · apply %s", it.Source, applyWindow(it)),
		}
		if len(it.Keywords) > 0 {
			lines = append(lines, "matched: `"+strings.Join(it.Keywords, "`, `")+"`")
		}
		p.Blocks = append(p.Blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
		})
	}
	if more > 0 {
		p.Blocks = append(p.Blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("…and %d more in the run report", more)},
		})
	}
	return p
}
