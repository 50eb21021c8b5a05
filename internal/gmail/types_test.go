package gmail

import (
	"encoding/base64"
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func testMessage() *gmail.Message {
	return &gmail.Message{
		Id:       "msg-1",
		ThreadId: "thread-1",
		Snippet:  "first line of the message",
		LabelIds: []string{LabelInbox, LabelUnread},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "sender@example.com"},
				{Name: "To", Value: "rcpt@example.com"},
				{Name: "Subject", Value: "Quarterly report"},
				{Name: "Date", Value: "Mon, 24 Aug 2026 10:00:00 +0000"},
			},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte("plain body"))},
				},
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte("<p>html body</p>"))},
				},
				{
					MimeType: "application/pdf",
					Filename: "report.pdf",
					Body:     &gmail.MessagePartBody{AttachmentId: "att-1", Size: 2048},
				},
			},
		},
	}
}

func TestToSummary(t *testing.T) {
	s := toSummary(testMessage())

	if s.ID != "msg-1" || s.ThreadID != "thread-1" {
		t.Errorf("ids = %q/%q", s.ID, s.ThreadID)
	}
	if s.From != "sender@example.com" {
		t.Errorf("From = %q", s.From)
	}
	if s.Subject != "Quarterly report" {
		t.Errorf("Subject = %q", s.Subject)
	}
	if len(s.Labels) != 2 {
		t.Errorf("Labels = %v", s.Labels)
	}
}

func TestToSummaryNil(t *testing.T) {
	if s := toSummary(nil); s.ID != "" {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestExtractBody(t *testing.T) {
	msg := testMessage()

	plain, err := extractBody(msg, "text/plain")
	if err != nil {
		t.Fatalf("extractBody plain: %v", err)
	}
	if plain != "plain body" {
		t.Errorf("plain = %q", plain)
	}

	html, err := extractBody(msg, "text/html")
	if err != nil {
		t.Fatalf("extractBody html: %v", err)
	}
	if html != "<p>html body</p>" {
		t.Errorf("html = %q", html)
	}

	if _, err := extractBody(msg, "text/calendar"); err == nil {
		t.Error("expected error for absent MIME type")
	}
}

func TestExtractBodySinglePart(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte("top level"))},
		},
	}
	body, err := extractBody(msg, "text/plain")
	if err != nil {
		t.Fatalf("extractBody: %v", err)
	}
	if body != "top level" {
		t.Errorf("body = %q", body)
	}
}

func TestCollectAttachments(t *testing.T) {
	atts := collectAttachments(testMessage())
	if len(atts) != 1 {
		t.Fatalf("got %d attachments, want 1", len(atts))
	}
	a := atts[0]
	if a.AttachmentID != "att-1" || a.Filename != "report.pdf" || a.Size != 2048 {
		t.Errorf("attachment = %+v", a)
	}
	if a.MessageID != "msg-1" {
		t.Errorf("MessageID = %q", a.MessageID)
	}
}

func TestDecodeBase64StdFallback(t *testing.T) {
	// These bytes encode differently in the url and standard alphabets.
	payload := []byte{0xfb, 0xff, 0x01}

	got, err := decodeBase64(base64.URLEncoding.EncodeToString(payload))
	if err != nil {
		t.Fatalf("url decode: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("url round trip mismatch")
	}

	got, err = decodeBase64(base64.StdEncoding.EncodeToString(payload))
	if err != nil {
		t.Fatalf("std decode: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("std round trip mismatch")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "____etc_passwd"},
		{"dir/file.txt", "dir_file.txt"},
		{`win\path.doc`, "win_path.doc"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
