package chat

import (
	"context"
	"fmt"

	chat "google.golang.org/api/chat/v1"

	"github.com/rlarsen/workspace-mcp/internal/google"
)

// Client wraps the Chat service for one account.
type Client struct {
	svc     *chat.Service
	account string
}

// NewClient creates a Chat client authenticated through the credential
// manager.
func NewClient(ctx context.Context, manager google.TokenManager, account string) (*Client, error) {
	svc, err := chat.NewService(ctx, google.ClientOptions(ctx, manager, account)...)
	if err != nil {
		return nil, fmt.Errorf("create Chat service: %w", err)
	}
	return &Client{svc: svc, account: account}, nil
}

// Account returns the account this client acts as.
func (c *Client) Account() string {
	return c.account
}

// ListSpaces lists the spaces the account is a member of.
func (c *Client) ListSpaces(ctx context.Context, maxResults int64) ([]Space, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	res, err := c.svc.Spaces.List().PageSize(min(maxResults, 100)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	var spaces []Space
	for _, s := range res.Spaces {
		spaces = append(spaces, toSpace(s))
	}
	return spaces, nil
}

// GetSpace retrieves one space.
func (c *Client) GetSpace(ctx context.Context, space string) (*Space, error) {
	s, err := c.svc.Spaces.Get(normalizeSpace(space)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get space %s: %w", space, err)
	}
	result := toSpace(s)
	return &result, nil
}

// CreateSpace creates a named space.
func (c *Client) CreateSpace(ctx context.Context, displayName string) (*Space, error) {
	created, err := c.svc.Spaces.Create(&chat.Space{
		SpaceType:   "SPACE",
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create space %q: %w", displayName, err)
	}
	result := toSpace(created)
	return &result, nil
}

// UpdateSpace renames a space.
func (c *Client) UpdateSpace(ctx context.Context, space, displayName string) (*Space, error) {
	updated, err := c.svc.Spaces.Patch(normalizeSpace(space), &chat.Space{
		DisplayName: displayName,
	}).UpdateMask("display_name").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update space %s: %w", space, err)
	}
	result := toSpace(updated)
	return &result, nil
}

// DeleteSpace deletes a space and everything in it.
func (c *Client) DeleteSpace(ctx context.Context, space string) error {
	if _, err := c.svc.Spaces.Delete(normalizeSpace(space)).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete space %s: %w", space, err)
	}
	return nil
}

// ListMessages lists the most recent messages in a space, newest first.
func (c *Client) ListMessages(ctx context.Context, space string, maxResults int64) ([]Message, error) {
	if maxResults <= 0 {
		maxResults = 25
	}
	res, err := c.svc.Spaces.Messages.List(normalizeSpace(space)).
		PageSize(min(maxResults, 100)).
		OrderBy("createTime desc").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list messages in %s: %w", space, err)
	}
	var messages []Message
	for _, m := range res.Messages {
		messages = append(messages, toMessage(m))
	}
	return messages, nil
}

// GetMessage retrieves one message by resource name.
func (c *Client) GetMessage(ctx context.Context, name string) (*Message, error) {
	m, err := c.svc.Spaces.Messages.Get(name).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", name, err)
	}
	result := toMessage(m)
	return &result, nil
}

// SendMessage posts a text message to a space, optionally replying on a
// thread.
func (c *Client) SendMessage(ctx context.Context, space, text, thread string) (*Message, error) {
	msg := &chat.Message{Text: text}
	req := c.svc.Spaces.Messages.Create(normalizeSpace(space), msg)
	if thread != "" {
		msg.Thread = &chat.Thread{Name: thread}
		req = req.MessageReplyOption("REPLY_MESSAGE_FALLBACK_TO_NEW_THREAD")
	}
	sent, err := req.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("send message to %s: %w", space, err)
	}
	result := toMessage(sent)
	return &result, nil
}

// UpdateMessage replaces the text of a message.
func (c *Client) UpdateMessage(ctx context.Context, name, text string) (*Message, error) {
	updated, err := c.svc.Spaces.Messages.Patch(name, &chat.Message{Text: text}).
		UpdateMask("text").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update message %s: %w", name, err)
	}
	result := toMessage(updated)
	return &result, nil
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, name string) error {
	if _, err := c.svc.Spaces.Messages.Delete(name).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete message %s: %w", name, err)
	}
	return nil
}

// ListMembers lists the members of a space.
func (c *Client) ListMembers(ctx context.Context, space string, maxResults int64) ([]Member, error) {
	if maxResults <= 0 {
		maxResults = 50
	}
	res, err := c.svc.Spaces.Members.List(normalizeSpace(space)).
		PageSize(min(maxResults, 100)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list members of %s: %w", space, err)
	}
	var members []Member
	for _, m := range res.Memberships {
		members = append(members, toMember(m))
	}
	return members, nil
}

// AddMember invites a user to a space by email address.
func (c *Client) AddMember(ctx context.Context, space, email string) (*Member, error) {
	created, err := c.svc.Spaces.Members.Create(normalizeSpace(space), &chat.Membership{
		Member: &chat.User{
			Name: "users/" + email,
			Type: "HUMAN",
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("add %s to %s: %w", email, space, err)
	}
	result := toMember(created)
	return &result, nil
}

// RemoveMember removes a membership by resource name.
func (c *Client) RemoveMember(ctx context.Context, membershipName string) error {
	if _, err := c.svc.Spaces.Members.Delete(membershipName).Context(ctx).Do(); err != nil {
		return fmt.Errorf("remove member %s: %w", membershipName, err)
	}
	return nil
}

// AddReaction adds a unicode emoji reaction to a message.
func (c *Client) AddReaction(ctx context.Context, messageName, emoji string) (*Reaction, error) {
	created, err := c.svc.Spaces.Messages.Reactions.Create(messageName, &chat.Reaction{
		Emoji: &chat.Emoji{Unicode: emoji},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("add reaction to %s: %w", messageName, err)
	}
	result := toReaction(created)
	return &result, nil
}

// ListReactions lists the reactions on a message.
func (c *Client) ListReactions(ctx context.Context, messageName string) ([]Reaction, error) {
	res, err := c.svc.Spaces.Messages.Reactions.List(messageName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list reactions on %s: %w", messageName, err)
	}
	var reactions []Reaction
	for _, r := range res.Reactions {
		reactions = append(reactions, toReaction(r))
	}
	return reactions, nil
}

// RemoveReaction deletes a reaction by resource name.
func (c *Client) RemoveReaction(ctx context.Context, reactionName string) error {
	if _, err := c.svc.Spaces.Messages.Reactions.Delete(reactionName).Context(ctx).Do(); err != nil {
		return fmt.Errorf("remove reaction %s: %w", reactionName, err)
	}
	return nil
}
