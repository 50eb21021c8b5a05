package gmail

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildRFC2822Plain(t *testing.T) {
	raw, err := buildRFC2822(SendInput{
		To:      []string{"a@example.com", "b@example.com"},
		Cc:      []string{"c@example.com"},
		Subject: "Hello",
		Body:    "hi there",
	})
	if err != nil {
		t.Fatalf("buildRFC2822: %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"To: a@example.com, b@example.com\r\n",
		"Cc: c@example.com\r\n",
		"Subject: Hello\r\n",
		"Content-Type: text/plain",
		"\r\n\r\nhi there",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Bcc:") {
		t.Error("empty Bcc header must be omitted")
	}
}

func TestBuildRFC2822HTML(t *testing.T) {
	raw, err := buildRFC2822(SendInput{
		To:   []string{"a@example.com"},
		Body: "<b>hi</b>",
		HTML: true,
	})
	if err != nil {
		t.Fatalf("buildRFC2822: %v", err)
	}
	if !strings.Contains(string(raw), "Content-Type: text/html") {
		t.Error("expected html content type")
	}
}

func TestBuildRFC2822ThreadingHeaders(t *testing.T) {
	raw, err := buildRFC2822(SendInput{
		To:         []string{"a@example.com"},
		Subject:    "Re: Hello",
		Body:       "reply",
		inReplyTo:  "<orig@mail.example.com>",
		references: "<orig@mail.example.com>",
	})
	if err != nil {
		t.Fatalf("buildRFC2822: %v", err)
	}
	msg := string(raw)
	if !strings.Contains(msg, "In-Reply-To: <orig@mail.example.com>\r\n") {
		t.Error("missing In-Reply-To header")
	}
	if !strings.Contains(msg, "References: <orig@mail.example.com>\r\n") {
		t.Error("missing References header")
	}
}

func TestBuildRFC2822WithAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("attachment body"), 0o600); err != nil {
		t.Fatal(err)
	}

	raw, err := buildRFC2822(SendInput{
		To:             []string{"a@example.com"},
		Subject:        "With file",
		Body:           "see attached",
		AttachmentPath: path,
	})
	if err != nil {
		t.Fatalf("buildRFC2822: %v", err)
	}

	msg := string(raw)
	for _, want := range []string{
		"multipart/mixed",
		`filename="notes.txt"`,
		"Content-Transfer-Encoding: base64",
		"see attached",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBuildRFC2822MissingAttachment(t *testing.T) {
	_, err := buildRFC2822(SendInput{
		To:             []string{"a@example.com"},
		AttachmentPath: filepath.Join(t.TempDir(), "missing.pdf"),
	})
	if err == nil {
		t.Fatal("expected error for missing attachment file")
	}
}

func TestReplySubject(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello", "Re: Hello"},
		{"Re: Hello", "Re: Hello"},
		{"RE: Hello", "RE: Hello"},
	}
	for _, tt := range tests {
		if got := replySubject(tt.in); got != tt.want {
			t.Errorf("replySubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForwardSubject(t *testing.T) {
	if got := forwardSubject("Hello"); got != "Fwd: Hello" {
		t.Errorf("forwardSubject = %q", got)
	}
	if got := forwardSubject("Fwd: Hello"); got != "Fwd: Hello" {
		t.Errorf("forwardSubject = %q", got)
	}
}

func TestSplitAddresses(t *testing.T) {
	got := splitAddresses("a@example.com, b@example.com , ,c@example.com")
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(got) != len(want) {
		t.Fatalf("splitAddresses = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAddresses[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
