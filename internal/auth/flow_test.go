package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// browserStub simulates the user's browser: it parses the consent URL and
// immediately hits the loopback callback with a code.
func browserStub(t *testing.T, code string, mangleState bool) func(string) error {
	t.Helper()
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		redirect := u.Query().Get("redirect_uri")
		state := u.Query().Get("state")
		require.NotEmpty(t, redirect)
		require.NotEmpty(t, state)
		if mangleState {
			state = "wrong-" + state
		}
		go func() {
			cb := fmt.Sprintf("%s?state=%s&code=%s", redirect, url.QueryEscape(state), url.QueryEscape(code))
			resp, err := http.Get(cb)
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func consentConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "cid",
		ClientSecret: "cs",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/o/oauth2/auth",
			TokenURL: tokenURL,
		},
		Scopes: []string{"https://www.googleapis.com/auth/tasks"},
	}
}

func TestAuthorizeSuccess(t *testing.T) {
	exchange := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "test-code", r.Form.Get("code"))
		assert.NotEmpty(t, r.Form.Get("code_verifier"), "exchange must carry the PKCE verifier")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "consented-token",
			"refresh_token": "consented-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer exchange.Close()

	store := NewFileStore(t.TempDir())
	mgr := NewManager(store)

	account, err := mgr.Authorize(context.Background(), ConsentOptions{
		Config:      consentConfig(exchange.URL),
		Account:     "tester@example.com",
		Timeout:     5 * time.Second,
		OpenBrowser: browserStub(t, "test-code", false),
	})
	require.NoError(t, err)
	assert.Equal(t, "tester@example.com", account)

	// Credential is persisted with an expiry about an hour out.
	persisted, err := store.Load("tester@example.com")
	require.NoError(t, err)
	assert.Equal(t, "consented-token", persisted.AccessToken)
	assert.Equal(t, "consented-refresh", persisted.RefreshToken)
	assert.Equal(t, exchange.URL, persisted.TokenURI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), persisted.Expiry, 2*time.Minute)

	// Token retrieval serves the new credential without a refresh.
	tok, err := mgr.AccessToken(context.Background(), "tester@example.com")
	require.NoError(t, err)
	assert.Equal(t, "consented-token", tok.AccessToken)
}

func TestAuthorizeExchangeRejectedNotRetryable(t *testing.T) {
	exchange := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
	}))
	defer exchange.Close()

	mgr := NewManager(NewFileStore(t.TempDir()))
	_, err := mgr.Authorize(context.Background(), ConsentOptions{
		Config:      consentConfig(exchange.URL),
		Account:     "default",
		Timeout:     5 * time.Second,
		OpenBrowser: browserStub(t, "dead-code", false),
	})
	require.Error(t, err)
	// A rejected code cannot succeed on retry.
	assert.False(t, IsRetryable(err))
	assert.Contains(t, err.Error(), "rejected")
}

func TestAuthorizeTimeoutReleasesPort(t *testing.T) {
	// Pin the listener port so we can prove it is released afterwards.
	probe, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := probe.Addr().(*net.TCPAddr).Port
	probe.Close()

	mgr := NewManager(NewFileStore(t.TempDir()))

	start := time.Now()
	_, err = mgr.Authorize(context.Background(), ConsentOptions{
		Config:      consentConfig("http://127.0.0.1:1/token"),
		Account:     "default",
		Timeout:     100 * time.Millisecond,
		Port:        port,
		OpenBrowser: func(string) error { return nil }, // never calls back
	})
	var cte *ConsentTimeoutError
	require.ErrorAs(t, err, &cte)
	assert.Less(t, time.Since(start), 5*time.Second)

	// The port must be immediately reusable.
	deadline := time.Now().Add(3 * time.Second)
	for {
		l, lerr := net.Listen("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
		if lerr == nil {
			l.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("port %d not released after consent timeout: %v", port, lerr)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAuthorizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	mgr := NewManager(NewFileStore(t.TempDir()))
	_, err := mgr.Authorize(ctx, ConsentOptions{
		Config:      consentConfig("http://127.0.0.1:1/token"),
		Account:     "default",
		Timeout:     time.Minute,
		OpenBrowser: func(string) error { return nil },
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthorizeStateMismatch(t *testing.T) {
	mgr := NewManager(NewFileStore(t.TempDir()))
	_, err := mgr.Authorize(context.Background(), ConsentOptions{
		Config:      consentConfig("http://127.0.0.1:1/token"),
		Account:     "default",
		Timeout:     5 * time.Second,
		OpenBrowser: browserStub(t, "test-code", true),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state mismatch")
}

func TestAuthorizeRequiresConfig(t *testing.T) {
	mgr := NewManager(NewFileStore(t.TempDir()))
	_, err := mgr.Authorize(context.Background(), ConsentOptions{})
	assert.Error(t, err)
}
