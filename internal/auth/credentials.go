package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// expiryFormats are the timestamp layouts accepted when reading persisted
// credentials. Google's Python client writes naive UTC timestamps without a
// zone suffix; our own writes use RFC 3339.
var expiryFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Credential holds the tokens and metadata granting API access for one
// account, mirroring the Google authorized-user file format on disk.
type Credential struct {
	AccessToken  string
	RefreshToken string
	TokenURI     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Expiry       time.Time
}

// credentialJSON is the on-disk representation (Google authorized-user
// format, as produced by Credentials.to_json in the Python client).
type credentialJSON struct {
	Type         string   `json:"type,omitempty"`
	AccessToken  string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

// MarshalJSON writes the credential in the authorized-user file format.
func (c *Credential) MarshalJSON() ([]byte, error) {
	out := credentialJSON{
		Type:         "authorized_user",
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenURI:     c.TokenURI,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scopes:       c.Scopes,
	}
	if !c.Expiry.IsZero() {
		out.Expiry = c.Expiry.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads either our own output or a file written by Google's
// Python client.
func (c *Credential) UnmarshalJSON(data []byte) error {
	var in credentialJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*c = Credential{
		AccessToken:  in.AccessToken,
		RefreshToken: in.RefreshToken,
		TokenURI:     in.TokenURI,
		ClientID:     in.ClientID,
		ClientSecret: in.ClientSecret,
		Scopes:       in.Scopes,
	}

	if in.Expiry == "" {
		return nil
	}
	for _, layout := range expiryFormats {
		if t, err := time.Parse(layout, in.Expiry); err == nil {
			c.Expiry = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable credential expiry %q", in.Expiry)
}

// ValidAt reports whether the access token is usable at time t with the
// given safety margin. A zero expiry means the token does not expire.
func (c *Credential) ValidAt(t time.Time, margin time.Duration) bool {
	if c.AccessToken == "" {
		return false
	}
	if c.Expiry.IsZero() {
		return true
	}
	return c.Expiry.After(t.Add(margin))
}

// HasRefreshToken reports whether the credential can be refreshed without
// interactive consent.
func (c *Credential) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// oauthConfig builds the OAuth2 config used to refresh this credential.
// Fields embedded in the credential win; fallback fills any gaps (a file
// written by older tooling may omit the client identifier).
func (c *Credential) oauthConfig(fallback *oauth2.Config) *oauth2.Config {
	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scopes:       c.Scopes,
	}
	conf.Endpoint.TokenURL = c.TokenURI
	if fallback != nil {
		if conf.ClientID == "" {
			conf.ClientID = fallback.ClientID
		}
		if conf.ClientSecret == "" {
			conf.ClientSecret = fallback.ClientSecret
		}
		if conf.Endpoint.TokenURL == "" {
			conf.Endpoint.TokenURL = fallback.Endpoint.TokenURL
		}
	}
	return conf
}

// fromToken builds a Credential from a freshly exchanged oauth2 token and
// the config that produced it.
func fromToken(tok *oauth2.Token, conf *oauth2.Config) *Credential {
	return &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
		Expiry:       tok.Expiry,
	}
}
