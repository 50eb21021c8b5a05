package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Gmail Users service for one account.
type Client struct {
	svc     *gmail.UsersService
	account string
}

// NewClient creates a Gmail client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := gmail.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Gmail service: %w", err)
	}
	return &Client{svc: svc.Users, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// SearchMessages lists messages matching a Gmail search query, fetching
// header metadata for each. Pagination runs until maxResults messages are
// collected or the result set ends.
func (c *Client) SearchMessages(ctx context.Context, query string, maxResults int64) ([]MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = 25
	}

	var ids []string
	pageToken := ""
	for int64(len(ids)) < maxResults {
		pageSize := min(maxResults-int64(len(ids)), 100)
		req := c.svc.Messages.List("me").Q(query).MaxResults(pageSize)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		res, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("search messages: %w", err)
		}
		for _, m := range res.Messages {
			ids = append(ids, m.Id)
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	summaries := make([]MessageSummary, 0, len(ids))
	for _, id := range ids {
		msg, err := c.svc.Messages.Get("me", id).Format("metadata").
			MetadataHeaders("From", "To", "Cc", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get message %s: %w", id, err)
		}
		summaries = append(summaries, toSummary(msg))
	}
	return summaries, nil
}

// GetMessage retrieves a full message with its decoded plain-text body and
// attachment metadata.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	msg, err := c.getRaw(ctx, messageID)
	if err != nil {
		return nil, err
	}

	result := &Message{MessageSummary: toSummary(msg)}
	if body, err := extractBody(msg, "text/plain"); err == nil {
		result.Body = body
	} else if body, err := extractBody(msg, "text/html"); err == nil {
		result.Body = body
	}
	result.Attachments = collectAttachments(msg)
	return result, nil
}

// GetMessageBody extracts the body of a message in the requested format,
// "text" or "html".
func (c *Client) GetMessageBody(ctx context.Context, messageID, format string) (string, error) {
	var mimeType string
	switch format {
	case "", "text":
		mimeType = "text/plain"
	case "html":
		mimeType = "text/html"
	default:
		return "", fmt.Errorf("invalid format %q, must be 'text' or 'html'", format)
	}

	msg, err := c.getRaw(ctx, messageID)
	if err != nil {
		return "", err
	}
	return extractBody(msg, mimeType)
}

func (c *Client) getRaw(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}
	return msg, nil
}

// ModifyMessage adds and removes label IDs on one message.
func (c *Client) ModifyMessage(ctx context.Context, messageID string, addLabels, removeLabels []string) error {
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabels,
		RemoveLabelIds: removeLabels,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("modify message %s: %w", messageID, err)
	}
	return nil
}

// BatchModifyMessages adds and removes label IDs on many messages in one API
// call.
func (c *Client) BatchModifyMessages(ctx context.Context, messageIDs, addLabels, removeLabels []string) error {
	err := c.svc.Messages.BatchModify("me", &gmail.BatchModifyMessagesRequest{
		Ids:            messageIDs,
		AddLabelIds:    addLabels,
		RemoveLabelIds: removeLabels,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch modify %d messages: %w", len(messageIDs), err)
	}
	return nil
}

// TrashMessage moves a message to trash.
func (c *Client) TrashMessage(ctx context.Context, messageID string) error {
	if _, err := c.svc.Messages.Trash("me", messageID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("trash message %s: %w", messageID, err)
	}
	return nil
}

// UntrashMessage restores a message from trash.
func (c *Client) UntrashMessage(ctx context.Context, messageID string) error {
	if _, err := c.svc.Messages.Untrash("me", messageID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("untrash message %s: %w", messageID, err)
	}
	return nil
}

// DeleteMessage permanently deletes a message, bypassing trash.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	if err := c.svc.Messages.Delete("me", messageID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete message %s: %w", messageID, err)
	}
	return nil
}

// ListLabels lists all labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	res, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	var labels []Label
	for _, l := range res.Labels {
		labels = append(labels, toLabel(l))
	}
	return labels, nil
}

// CreateLabel creates a user label.
func (c *Client) CreateLabel(ctx context.Context, name string) (*Label, error) {
	created, err := c.svc.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create label %q: %w", name, err)
	}
	result := toLabel(created)
	return &result, nil
}

// DeleteLabel deletes a user label.
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	if err := c.svc.Labels.Delete("me", labelID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete label %s: %w", labelID, err)
	}
	return nil
}

// ResolveLabelID maps a label name to its ID. Names match case-insensitively
// for system labels, exactly for user labels.
func (c *Client) ResolveLabelID(ctx context.Context, name string) (string, error) {
	labels, err := c.ListLabels(ctx)
	if err != nil {
		return "", err
	}
	for _, l := range labels {
		if l.Name == name || l.ID == name {
			return l.ID, nil
		}
	}
	return "", fmt.Errorf("label %q not found", name)
}

// ListThreads lists threads matching a query.
func (c *Client) ListThreads(ctx context.Context, query string, maxResults int64) ([]Thread, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	res, err := c.svc.Threads.List("me").Q(query).MaxResults(min(maxResults, 100)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	var threads []Thread
	for _, t := range res.Threads {
		threads = append(threads, Thread{ID: t.Id, Snippet: t.Snippet})
	}
	return threads, nil
}

// GetThread retrieves a thread with header summaries for each message.
func (c *Client) GetThread(ctx context.Context, threadID string) (*Thread, error) {
	t, err := c.svc.Threads.Get("me", threadID).Format("metadata").
		MetadataHeaders("From", "To", "Subject", "Date").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get thread %s: %w", threadID, err)
	}
	result := &Thread{ID: t.Id, Snippet: t.Snippet}
	for _, m := range t.Messages {
		result.Messages = append(result.Messages, toSummary(m))
	}
	return result, nil
}
