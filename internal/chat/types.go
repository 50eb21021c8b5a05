package chat

import (
	"strings"

	chat "google.golang.org/api/chat/v1"
)

// Space is a Chat room or direct-message conversation.
type Space struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Type        string `json:"type,omitempty"` // SPACE or DIRECT_MESSAGE
	Threaded    bool   `json:"threaded,omitempty"`
}

// Message is one message in a space.
type Message struct {
	Name       string `json:"name"`
	Text       string `json:"text,omitempty"`
	Sender     string `json:"sender,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
	Thread     string `json:"thread,omitempty"`
}

// Member is one membership in a space.
type Member struct {
	Name   string `json:"name"`
	Member string `json:"member,omitempty"`
	Role   string `json:"role,omitempty"`
	State  string `json:"state,omitempty"`
}

// Reaction is one emoji reaction on a message.
type Reaction struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
	User  string `json:"user,omitempty"`
}

func toSpace(s *chat.Space) Space {
	if s == nil {
		return Space{}
	}
	return Space{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Type:        s.SpaceType,
		Threaded:    s.SpaceThreadingState == "THREADED_MESSAGES",
	}
}

func toMessage(m *chat.Message) Message {
	if m == nil {
		return Message{}
	}
	out := Message{
		Name:       m.Name,
		Text:       m.Text,
		CreateTime: m.CreateTime,
	}
	if m.Sender != nil {
		out.Sender = m.Sender.Name
	}
	if m.Thread != nil {
		out.Thread = m.Thread.Name
	}
	return out
}

func toMember(m *chat.Membership) Member {
	if m == nil {
		return Member{}
	}
	out := Member{
		Name:  m.Name,
		Role:  m.Role,
		State: m.State,
	}
	if m.Member != nil {
		out.Member = m.Member.Name
	}
	return out
}

func toReaction(r *chat.Reaction) Reaction {
	if r == nil {
		return Reaction{}
	}
	out := Reaction{Name: r.Name}
	if r.Emoji != nil {
		out.Emoji = r.Emoji.Unicode
	}
	if r.User != nil {
		out.User = r.User.Name
	}
	return out
}

// normalizeSpace accepts a bare space ID or full resource name and returns
// the resource name.
func normalizeSpace(space string) string {
	if strings.HasPrefix(space, "spaces/") {
		return space
	}
	return "spaces/" + space
}
