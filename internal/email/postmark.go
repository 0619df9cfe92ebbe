package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/task"
)

const postmarkURL = "https://api.postmarkapp.com/email"

type Client struct {
	serverToken string
	fromEmail   string
	baseURL     string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(serverToken, fromEmail, baseURL string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		baseURL:     baseURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// TaskAssigned tells a member a task was assigned to them.
func (c *Client) TaskAssigned(ctx context.Context, to model.Member, t model.Task) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	link := fmt.Sprintf("%s/tasks/%d", c.baseURL, t.ID)
	textBody := fmt.Sprintf(
		"Hi %s,\n\nYou have been assigned \"%s\" (%s, worth %d points).\n\n%s",
		to.Name, t.Title, t.Difficulty, task.PointsFor(t.Difficulty), link,
	)
	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p><p>You have been assigned <strong>%s</strong> (%s, worth %d points).</p><p><a href="%s">Open task</a></p>`,
		html.EscapeString(to.Name), html.EscapeString(t.Title), t.Difficulty, task.PointsFor(t.Difficulty), link,
	)

	return c.send(ctx, postmarkEmail{
		From:     c.fromEmail,
		To:       to.Email,
		Subject:  fmt.Sprintf("New task: %s", t.Title),
		HtmlBody: htmlBody,
		TextBody: textBody,
	})
}

func (c *Client) send(ctx context.Context, payload postmarkEmail) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", postmarkURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
