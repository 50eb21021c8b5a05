// Package chat wraps the Google Chat v1 API for spaces, messages, members,
// and reactions. Chat resources are addressed by resource name, for example
// spaces/AAAA or spaces/AAAA/messages/BBBB.
package chat
