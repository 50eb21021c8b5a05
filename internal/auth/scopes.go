package auth

// DefaultScopes is the fixed scope set requested at consent time. It covers
// every Workspace service the server exposes tools for; a credential granted
// with fewer scopes fails with an authorization error on out-of-scope calls.
var DefaultScopes = []string{
	// Identity (used to name the credential file after the account)
	"https://www.googleapis.com/auth/userinfo.email",

	// Gmail
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/gmail.settings.basic",

	// Drive
	"https://www.googleapis.com/auth/drive",

	// Docs, Sheets, Slides, Forms
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/forms.body",
	"https://www.googleapis.com/auth/forms.responses.readonly",

	// Calendar and Tasks
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/tasks",

	// Chat
	"https://www.googleapis.com/auth/chat.spaces",
	"https://www.googleapis.com/auth/chat.messages",
	"https://www.googleapis.com/auth/chat.memberships",
}
