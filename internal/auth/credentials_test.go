package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialJSONRoundTrip(t *testing.T) {
	orig := &Credential{
		AccessToken:  "ya29.test-access",
		RefreshToken: "1//refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "client-id.apps.googleusercontent.com",
		ClientSecret: "secret",
		Scopes:       []string{"https://www.googleapis.com/auth/drive", "https://www.googleapis.com/auth/tasks"},
		Expiry:       time.Date(2025, 6, 1, 12, 0, 0, 123456000, time.UTC),
	}

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var got Credential
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, orig.AccessToken, got.AccessToken)
	assert.Equal(t, orig.RefreshToken, got.RefreshToken)
	assert.Equal(t, orig.TokenURI, got.TokenURI)
	assert.Equal(t, orig.ClientID, got.ClientID)
	assert.Equal(t, orig.ClientSecret, got.ClientSecret)
	assert.Equal(t, orig.Scopes, got.Scopes)
	assert.True(t, orig.Expiry.Equal(got.Expiry), "expiry should survive the round trip")
}

func TestCredentialUnmarshalPythonFormat(t *testing.T) {
	// As written by google-auth's Credentials.to_json: naive UTC expiry,
	// no zone suffix.
	raw := `{
		"token": "ya29.abc",
		"refresh_token": "1//def",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_id": "cid",
		"client_secret": "cs",
		"scopes": ["https://www.googleapis.com/auth/gmail.modify"],
		"expiry": "2025-06-01T12:30:45.123456"
	}`

	var cred Credential
	require.NoError(t, json.Unmarshal([]byte(raw), &cred))
	assert.Equal(t, "ya29.abc", cred.AccessToken)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 45, 123456000, time.UTC), cred.Expiry)
}

func TestCredentialUnmarshalBadExpiry(t *testing.T) {
	var cred Credential
	err := json.Unmarshal([]byte(`{"token":"t","expiry":"not-a-time"}`), &cred)
	assert.Error(t, err)
}

func TestCredentialValidAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	margin := time.Minute

	tests := []struct {
		name string
		cred Credential
		want bool
	}{
		{"fresh token", Credential{AccessToken: "t", Expiry: now.Add(time.Hour)}, true},
		{"expired", Credential{AccessToken: "t", Expiry: now.Add(-time.Hour)}, false},
		{"inside margin", Credential{AccessToken: "t", Expiry: now.Add(30 * time.Second)}, false},
		{"just outside margin", Credential{AccessToken: "t", Expiry: now.Add(61 * time.Second)}, true},
		{"no access token", Credential{Expiry: now.Add(time.Hour)}, false},
		{"zero expiry never expires", Credential{AccessToken: "t"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.ValidAt(now, margin))
		})
	}
}
