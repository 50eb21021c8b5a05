package gmail

import (
	gmail "google.golang.org/api/gmail/v1"
)

// System label IDs used by the message-state operations.
const (
	LabelInbox     = "INBOX"
	LabelStarred   = "STARRED"
	LabelUnread    = "UNREAD"
	LabelImportant = "IMPORTANT"
	LabelTrash     = "TRASH"
	LabelSpam      = "SPAM"
)

// MessageSummary is the header-level view of a message, as returned by
// search and list operations.
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Cc       string   `json:"cc,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Date     string   `json:"date,omitempty"`
	Snippet  string   `json:"snippet,omitempty"`
	Labels   []string `json:"labels,omitempty"`
}

// Message is a full message: summary plus decoded body and attachment
// metadata.
type Message struct {
	MessageSummary
	Body        string           `json:"body,omitempty"`
	Attachments []AttachmentInfo `json:"attachments,omitempty"`
}

// AttachmentInfo describes one attachment without its content.
type AttachmentInfo struct {
	MessageID    string `json:"messageId"`
	AttachmentID string `json:"attachmentId"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
}

// Label is a Gmail label.
type Label struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"` // "system" or "user"
	MessagesTotal  int64  `json:"messagesTotal,omitempty"`
	MessagesUnread int64  `json:"messagesUnread,omitempty"`
}

// Thread is a conversation: its messages in order.
type Thread struct {
	ID       string           `json:"id"`
	Snippet  string           `json:"snippet,omitempty"`
	Messages []MessageSummary `json:"messages,omitempty"`
}

// Draft is an unsent message.
type Draft struct {
	ID      string         `json:"id"`
	Message MessageSummary `json:"message"`
}

// SendInput carries the fields for composing a message.
type SendInput struct {
	To             []string
	Cc             []string
	Bcc            []string
	Subject        string
	Body           string
	HTML           bool
	AttachmentPath string

	// Threading fields, set by reply and forward.
	inReplyTo  string
	references string
	threadID   string
}

func header(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

func toSummary(msg *gmail.Message) MessageSummary {
	if msg == nil {
		return MessageSummary{}
	}
	return MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     header(msg, "From"),
		To:       header(msg, "To"),
		Cc:       header(msg, "Cc"),
		Subject:  header(msg, "Subject"),
		Date:     header(msg, "Date"),
		Snippet:  msg.Snippet,
		Labels:   msg.LabelIds,
	}
}

func toLabel(l *gmail.Label) Label {
	if l == nil {
		return Label{}
	}
	return Label{
		ID:             l.Id,
		Name:           l.Name,
		Type:           l.Type,
		MessagesTotal:  l.MessagesTotal,
		MessagesUnread: l.MessagesUnread,
	}
}

// walkParts recursively visits a message part tree.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
