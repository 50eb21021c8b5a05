package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenEndpoint is a fake OAuth2 token endpoint counting refresh requests.
type tokenEndpoint struct {
	srv      *httptest.Server
	requests atomic.Int64

	mu      sync.Mutex
	status  int
	body    map[string]any
	delay   time.Duration
	rotated string // refresh_token to return, if any
}

func newTokenEndpoint(t *testing.T) *tokenEndpoint {
	t.Helper()
	te := &tokenEndpoint{status: http.StatusOK}
	te.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		te.requests.Add(1)
		te.mu.Lock()
		status, body, delay, rotated := te.status, te.body, te.delay, te.rotated
		te.mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}
		if body == nil {
			body = map[string]any{
				"access_token": "refreshed-token",
				"token_type":   "Bearer",
				"expires_in":   3600,
			}
			if rotated != "" {
				body["refresh_token"] = rotated
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(te.srv.Close)
	return te
}

func (te *tokenEndpoint) fail(status int, errCode string) {
	te.mu.Lock()
	defer te.mu.Unlock()
	te.status = status
	te.body = map[string]any{"error": errCode}
}

func newTestManager(t *testing.T, te *tokenEndpoint, cred *Credential, opts ...Option) (*Manager, *FileStore) {
	t.Helper()
	store := NewFileStore(t.TempDir())
	if cred != nil {
		if te != nil {
			cred.TokenURI = te.srv.URL
		}
		require.NoError(t, store.Save("default", cred))
	}
	base := []Option{
		WithRefreshBackOff(func() backoff.BackOff {
			return backoff.NewConstantBackOff(time.Millisecond)
		}),
	}
	return NewManager(store, append(base, opts...)...), store
}

func TestAccessTokenValidNoNetwork(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken:  "cached-token",
		RefreshToken: "rt",
		ClientID:     "cid",
		Expiry:       time.Now().Add(time.Hour),
	}
	mgr, _ := newTestManager(t, te, cred)

	for range 3 {
		tok, err := mgr.AccessToken(context.Background(), "default")
		require.NoError(t, err)
		assert.Equal(t, "cached-token", tok.AccessToken)
		assert.True(t, tok.Expiry.After(time.Now()))
	}
	assert.EqualValues(t, 0, te.requests.Load(), "valid token must not hit the network")
}

func TestAccessTokenNoCredential(t *testing.T) {
	mgr, _ := newTestManager(t, nil, nil)

	_, err := mgr.AccessToken(context.Background(), "default")
	var nce *NoCredentialError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, "default", nce.Account)
	assert.True(t, IsAuthRequired(err))
	assert.False(t, IsRetryable(err))
}

func TestAccessTokenRefreshesExpired(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken:  "stale",
		RefreshToken: "rt",
		ClientID:     "cid",
		ClientSecret: "cs",
		Expiry:       time.Now().Add(-time.Minute),
	}
	mgr, store := newTestManager(t, te, cred)

	tok, err := mgr.AccessToken(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", tok.AccessToken)
	assert.True(t, tok.Expiry.After(time.Now().Add(30*time.Minute)))
	assert.EqualValues(t, 1, te.requests.Load())

	// New expiry must be persisted.
	persisted, err := store.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", persisted.AccessToken)
	assert.Equal(t, "rt", persisted.RefreshToken, "refresh token unchanged when server does not rotate")
}

func TestAccessTokenNearExpiryTriggersRefresh(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken:  "almost-expired",
		RefreshToken: "rt",
		ClientID:     "cid",
		Expiry:       time.Now().Add(30 * time.Second), // inside the 60s margin
	}
	mgr, _ := newTestManager(t, te, cred)

	tok, err := mgr.AccessToken(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", tok.AccessToken)
	assert.EqualValues(t, 1, te.requests.Load())
}

func TestConcurrentCallersShareOneRefresh(t *testing.T) {
	te := newTokenEndpoint(t)
	te.mu.Lock()
	te.delay = 50 * time.Millisecond
	te.mu.Unlock()

	cred := &Credential{
		AccessToken:  "stale",
		RefreshToken: "rt",
		ClientID:     "cid",
		Expiry:       time.Now().Add(-time.Minute),
	}
	mgr, _ := newTestManager(t, te, cred)

	const n = 10
	var wg sync.WaitGroup
	tokens := make([]Token, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tokens[i], errs[i] = mgr.AccessToken(context.Background(), "default")
		}()
	}
	wg.Wait()

	for i := range n {
		require.NoError(t, errs[i])
		assert.Equal(t, "refreshed-token", tokens[i].AccessToken)
	}
	assert.EqualValues(t, 1, te.requests.Load(), "N concurrent callers must trigger exactly one refresh")
}

func TestRefreshRotatesRefreshToken(t *testing.T) {
	te := newTokenEndpoint(t)
	te.mu.Lock()
	te.rotated = "rt-2"
	te.mu.Unlock()

	cred := &Credential{
		AccessToken:  "stale",
		RefreshToken: "rt-1",
		ClientID:     "cid",
		Expiry:       time.Now().Add(-time.Minute),
	}
	mgr, store := newTestManager(t, te, cred)

	_, err := mgr.AccessToken(context.Background(), "default")
	require.NoError(t, err)

	persisted, err := store.Load("default")
	require.NoError(t, err)
	assert.Equal(t, "rt-2", persisted.RefreshToken)
}

func TestRefreshRejectedDeletesCredential(t *testing.T) {
	te := newTokenEndpoint(t)
	te.fail(http.StatusBadRequest, "invalid_grant")

	cred := &Credential{
		AccessToken:  "stale",
		RefreshToken: "revoked",
		ClientID:     "cid",
		Expiry:       time.Now().Add(-time.Minute),
	}
	mgr, store := newTestManager(t, te, cred)

	_, err := mgr.AccessToken(context.Background(), "default")
	var rre *RefreshRejectedError
	require.ErrorAs(t, err, &rre)
	assert.True(t, IsAuthRequired(err))
	assert.EqualValues(t, 1, te.requests.Load(), "invalid_grant must not be retried")

	// Persisted file is gone; the next call fails fast with NoCredentialError.
	_, statErr := os.Stat(store.Path("default"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))

	_, err = mgr.AccessToken(context.Background(), "default")
	var nce *NoCredentialError
	assert.ErrorAs(t, err, &nce)
}

func TestRefreshTransientKeepsStaleCredential(t *testing.T) {
	te := newTokenEndpoint(t)
	te.fail(http.StatusServiceUnavailable, "temporarily_unavailable")

	cred := &Credential{
		AccessToken:  "stale",
		RefreshToken: "rt",
		ClientID:     "cid",
		Expiry:       time.Now().Add(-time.Minute),
	}
	mgr, store := newTestManager(t, te, cred)

	_, err := mgr.AccessToken(context.Background(), "default")
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsAuthRequired(err))
	assert.EqualValues(t, 3, te.requests.Load(), "transient failures retried up to the bound")

	// Stale credential survives for a later retry.
	persisted, loadErr := store.Load("default")
	require.NoError(t, loadErr)
	assert.Equal(t, "rt", persisted.RefreshToken)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken: "stale",
		ClientID:    "cid",
		Expiry:      time.Now().Add(-time.Minute),
	}
	mgr, store := newTestManager(t, te, cred)

	_, err := mgr.AccessToken(context.Background(), "default")
	var rre *RefreshRejectedError
	require.ErrorAs(t, err, &rre)
	assert.EqualValues(t, 0, te.requests.Load())

	_, statErr := os.Stat(store.Path("default"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestInvalidateIdempotent(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{AccessToken: "t", RefreshToken: "rt", Expiry: time.Now().Add(time.Hour)}
	mgr, _ := newTestManager(t, te, cred)

	require.NoError(t, mgr.Invalidate("default"))
	require.NoError(t, mgr.Invalidate("default"), "invalidate must be idempotent")

	_, err := mgr.AccessToken(context.Background(), "default")
	var nce *NoCredentialError
	assert.ErrorAs(t, err, &nce)
}

func TestFreshManagerReloadsPersistedCredential(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken:  "persisted",
		RefreshToken: "rt",
		Scopes:       []string{"https://www.googleapis.com/auth/drive"},
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond),
	}
	_, store := newTestManager(t, te, cred)

	fresh := NewManager(store)
	tok, err := fresh.AccessToken(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok.AccessToken)
	assert.True(t, cred.Expiry.Equal(tok.Expiry))
}

func TestStatus(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{
		AccessToken:  "t",
		RefreshToken: "rt",
		Scopes:       []string{"https://www.googleapis.com/auth/tasks"},
		Expiry:       time.Now().Add(time.Hour),
	}
	mgr, _ := newTestManager(t, te, cred)

	st := mgr.Status("default")
	assert.True(t, st.Authorized)
	assert.True(t, st.Valid)
	assert.True(t, st.Refreshable)
	assert.Equal(t, cred.Scopes, st.Scopes)

	st = mgr.Status("missing")
	assert.False(t, st.Authorized)
	assert.False(t, st.Valid)
}

func TestHasCredential(t *testing.T) {
	te := newTokenEndpoint(t)
	cred := &Credential{AccessToken: "t", Expiry: time.Now().Add(time.Hour)}
	mgr, _ := newTestManager(t, te, cred)

	assert.True(t, mgr.HasCredential("default"))
	assert.False(t, mgr.HasCredential("other"))
}
