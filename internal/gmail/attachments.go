package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// MaxAttachmentSize caps downloaded attachments at 25MB, the Gmail limit.
const MaxAttachmentSize = 25 * 1024 * 1024

// ListAttachments returns the attachment metadata of a message.
func (c *Client) ListAttachments(ctx context.Context, messageID string) ([]AttachmentInfo, error) {
	msg, err := c.getRaw(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return collectAttachments(msg), nil
}

// GetAttachment downloads and decodes one attachment.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	if messageID == "" || attachmentID == "" {
		return nil, fmt.Errorf("messageID and attachmentID are required")
	}

	attachment, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get attachment %s: %w", attachmentID, err)
	}
	if attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum %d", attachment.Size, MaxAttachmentSize)
	}
	return decodeBase64(attachment.Data)
}

func collectAttachments(msg *gmail.Message) []AttachmentInfo {
	if msg == nil {
		return nil
	}
	var attachments []AttachmentInfo
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			attachments = append(attachments, AttachmentInfo{
				MessageID:    msg.Id,
				AttachmentID: part.Body.AttachmentId,
				Filename:     part.Filename,
				MimeType:     part.MimeType,
				Size:         part.Body.Size,
			})
		}
	})
	return attachments
}

// extractBody finds and decodes the first body part of the given MIME type.
func extractBody(msg *gmail.Message, mimeType string) (string, error) {
	if msg == nil || msg.Payload == nil {
		return "", fmt.Errorf("message has no payload")
	}

	var data string
	if msg.Payload.MimeType == mimeType && msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		data = msg.Payload.Body.Data
	} else {
		walkParts(msg.Payload, func(part *gmail.MessagePart) {
			if data == "" && part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
				data = part.Body.Data
			}
		})
	}
	if data == "" {
		return "", fmt.Errorf("no %s body found in message", mimeType)
	}

	decoded, err := decodeBase64(data)
	if err != nil {
		return "", fmt.Errorf("decode message body: %w", err)
	}
	return string(decoded), nil
}

// decodeBase64 decodes Gmail API body data, which is base64url per RFC 4648
// but occasionally arrives in standard encoding.
func decodeBase64(data string) ([]byte, error) {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(data)
}

// SanitizeFilename strips path separators so attachment filenames cannot
// escape the download directory.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}
