package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// SendMessage composes and sends a message. It returns the sent message ID.
func (c *Client) SendMessage(ctx context.Context, input SendInput) (string, error) {
	if len(input.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	raw, err := buildRFC2822(input)
	if err != nil {
		return "", err
	}

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if input.threadID != "" {
		msg.ThreadId = input.threadID
	}

	sent, err := c.svc.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return sent.Id, nil
}

// ReplyMessage sends a reply on the original message's thread. With replyAll
// set, the original To and Cc recipients are kept.
func (c *Client) ReplyMessage(ctx context.Context, messageID, body string, replyAll bool) (string, error) {
	orig, err := c.getRaw(ctx, messageID)
	if err != nil {
		return "", err
	}

	input := SendInput{
		To:       []string{replyAddress(orig)},
		Subject:  replySubject(header(orig, "Subject")),
		Body:     body,
		threadID: orig.ThreadId,
	}
	if replyAll {
		if to := header(orig, "To"); to != "" {
			input.Cc = append(input.Cc, splitAddresses(to)...)
		}
		if cc := header(orig, "Cc"); cc != "" {
			input.Cc = append(input.Cc, splitAddresses(cc)...)
		}
	}
	if msgID := header(orig, "Message-ID"); msgID != "" {
		input.inReplyTo = msgID
		input.references = strings.TrimSpace(header(orig, "References") + " " + msgID)
	}

	return c.SendMessage(ctx, input)
}

// ForwardMessage forwards a message's body to new recipients with an
// optional note prepended.
func (c *Client) ForwardMessage(ctx context.Context, messageID string, to []string, note string) (string, error) {
	orig, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return "", err
	}

	var body strings.Builder
	if note != "" {
		body.WriteString(note)
		body.WriteString("\r\n\r\n")
	}
	fmt.Fprintf(&body, "---------- Forwarded message ----------\r\nFrom: %s\r\nDate: %s\r\nSubject: %s\r\n\r\n%s",
		orig.From, orig.Date, orig.Subject, orig.Body)

	return c.SendMessage(ctx, SendInput{
		To:      to,
		Subject: forwardSubject(orig.Subject),
		Body:    body.String(),
	})
}

// ListDrafts lists drafts with header summaries.
func (c *Client) ListDrafts(ctx context.Context, maxResults int64) ([]Draft, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	res, err := c.svc.Drafts.List("me").MaxResults(min(maxResults, 100)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}

	var drafts []Draft
	for _, d := range res.Drafts {
		full, err := c.svc.Drafts.Get("me", d.Id).Format("metadata").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("get draft %s: %w", d.Id, err)
		}
		drafts = append(drafts, Draft{ID: full.Id, Message: toSummary(full.Message)})
	}
	return drafts, nil
}

// CreateDraft saves a composed message as a draft and returns its ID.
func (c *Client) CreateDraft(ctx context.Context, input SendInput) (string, error) {
	raw, err := buildRFC2822(input)
	if err != nil {
		return "", err
	}
	created, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	return created.Id, nil
}

// SendDraft sends an existing draft and returns the sent message ID.
func (c *Client) SendDraft(ctx context.Context, draftID string) (string, error) {
	sent, err := c.svc.Drafts.Send("me", &gmail.Draft{Id: draftID}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send draft %s: %w", draftID, err)
	}
	return sent.Id, nil
}

// DeleteDraft deletes a draft.
func (c *Client) DeleteDraft(ctx context.Context, draftID string) error {
	if err := c.svc.Drafts.Delete("me", draftID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete draft %s: %w", draftID, err)
	}
	return nil
}

// buildRFC2822 renders a SendInput as an RFC 2822 message, multipart when an
// attachment is present.
func buildRFC2822(input SendInput) ([]byte, error) {
	var buf strings.Builder

	writeHeader := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&buf, "%s: %s\r\n", name, value)
		}
	}
	writeHeader("To", strings.Join(input.To, ", "))
	writeHeader("Cc", strings.Join(input.Cc, ", "))
	writeHeader("Bcc", strings.Join(input.Bcc, ", "))
	writeHeader("Subject", input.Subject)
	writeHeader("In-Reply-To", input.inReplyTo)
	writeHeader("References", input.references)
	writeHeader("MIME-Version", "1.0")

	contentType := "text/plain; charset=\"UTF-8\""
	if input.HTML {
		contentType = "text/html; charset=\"UTF-8\""
	}

	if input.AttachmentPath == "" {
		writeHeader("Content-Type", contentType)
		buf.WriteString("\r\n")
		buf.WriteString(input.Body)
		return []byte(buf.String()), nil
	}

	data, err := os.ReadFile(input.AttachmentPath)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	filename := filepath.Base(input.AttachmentPath)
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	const boundary = "workspace-mcp-boundary"
	writeHeader("Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", boundary))
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\nContent-Type: %s\r\n\r\n%s\r\n", boundary, contentType, input.Body)
	fmt.Fprintf(&buf, "--%s\r\nContent-Type: %s\r\nContent-Disposition: attachment; filename=%q\r\nContent-Transfer-Encoding: base64\r\n\r\n",
		boundary, mimeType, filename)
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	return []byte(buf.String()), nil
}

// replyAddress picks the address a reply should go to.
func replyAddress(msg *gmail.Message) string {
	if replyTo := header(msg, "Reply-To"); replyTo != "" {
		return replyTo
	}
	return header(msg, "From")
}

func replySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

func forwardSubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "fwd:") {
		return subject
	}
	return "Fwd: " + subject
}

func splitAddresses(headerValue string) []string {
	var out []string
	for _, addr := range strings.Split(headerValue, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
