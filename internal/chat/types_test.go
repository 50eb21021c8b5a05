package chat

import (
	"testing"

	chat "google.golang.org/api/chat/v1"
)

func TestToSpace(t *testing.T) {
	s := toSpace(&chat.Space{
		Name:                "spaces/AAAA",
		DisplayName:         "Engineering",
		SpaceType:           "SPACE",
		SpaceThreadingState: "THREADED_MESSAGES",
	})
	if s.Name != "spaces/AAAA" || s.DisplayName != "Engineering" {
		t.Errorf("space = %+v", s)
	}
	if !s.Threaded {
		t.Error("expected threaded space")
	}

	dm := toSpace(&chat.Space{Name: "spaces/BBBB", SpaceType: "DIRECT_MESSAGE"})
	if dm.Threaded {
		t.Error("direct message must not be threaded")
	}
}

func TestToMessage(t *testing.T) {
	m := toMessage(&chat.Message{
		Name:       "spaces/AAAA/messages/1",
		Text:       "hello",
		CreateTime: "2026-08-20T10:00:00Z",
		Sender:     &chat.User{Name: "users/123"},
		Thread:     &chat.Thread{Name: "spaces/AAAA/threads/t1"},
	})
	if m.Text != "hello" || m.Sender != "users/123" || m.Thread != "spaces/AAAA/threads/t1" {
		t.Errorf("message = %+v", m)
	}

	bare := toMessage(&chat.Message{Name: "spaces/AAAA/messages/2"})
	if bare.Sender != "" || bare.Thread != "" {
		t.Errorf("bare message = %+v", bare)
	}
}

func TestToMember(t *testing.T) {
	m := toMember(&chat.Membership{
		Name:   "spaces/AAAA/members/123",
		Role:   "ROLE_MANAGER",
		State:  "JOINED",
		Member: &chat.User{Name: "users/123"},
	})
	if m.Member != "users/123" || m.Role != "ROLE_MANAGER" {
		t.Errorf("member = %+v", m)
	}
}

func TestToReaction(t *testing.T) {
	r := toReaction(&chat.Reaction{
		Name:  "spaces/AAAA/messages/1/reactions/r1",
		Emoji: &chat.Emoji{Unicode: "👍"},
		User:  &chat.User{Name: "users/456"},
	})
	if r.Emoji != "👍" || r.User != "users/456" {
		t.Errorf("reaction = %+v", r)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := normalizeSpace("AAAA"); got != "spaces/AAAA" {
		t.Errorf("normalizeSpace = %q", got)
	}
	if got := normalizeSpace("spaces/AAAA"); got != "spaces/AAAA" {
		t.Errorf("normalizeSpace = %q", got)
	}
}
