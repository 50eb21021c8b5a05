package auth

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ClientSecretEnv overrides the default client secret location.
const ClientSecretEnv = "GOOGLE_CLIENT_SECRET_FILE"

// DefaultClientSecretPath returns the documented location of the OAuth
// client configuration downloaded from the Google Cloud console.
func DefaultClientSecretPath() string {
	if p := os.Getenv(ClientSecretEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "client_secret.json"
	}
	return filepath.Join(home, "google-workspace-mcp", "client_secret.json")
}

// LoadClientSecret reads a client_secret.json file ("installed" or "web"
// application format) and returns the OAuth2 config for the given scopes.
// The redirect URL is filled in by the consent flow once the loopback
// listener knows its port.
func LoadClientSecret(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secret %s: %w (download the OAuth client JSON from the Google Cloud console)", path, err)
	}
	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret %s: %w", path, err)
	}
	return conf, nil
}
