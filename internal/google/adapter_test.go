package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

type fakeManager struct {
	tok         auth.Token
	err         error
	calls       int
	invalidated int
	// next replaces tok after an invalidation, standing in for a fresh
	// credential.
	next *auth.Token
}

func (f *fakeManager) AccessToken(ctx context.Context, account string) (auth.Token, error) {
	f.calls++
	if f.err != nil {
		return auth.Token{}, f.err
	}
	return f.tok, nil
}

func (f *fakeManager) Invalidate(account string) error {
	f.invalidated++
	if f.next != nil {
		f.tok = *f.next
	}
	return nil
}

func TestTokenSource(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	mgr := &fakeManager{tok: auth.Token{AccessToken: "abc", Expiry: expiry}}

	ts := TokenSource(context.Background(), mgr, "default")
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.True(t, expiry.Equal(tok.Expiry))
}

func TestTokenSourcePropagatesError(t *testing.T) {
	wantErr := &auth.NoCredentialError{Account: "default"}
	mgr := &fakeManager{err: wantErr}

	_, err := TokenSource(context.Background(), mgr, "default").Token()
	var nce *auth.NoCredentialError
	assert.True(t, errors.As(err, &nce))
}

func TestHTTPClientForcesHTTP1(t *testing.T) {
	mgr := &fakeManager{tok: auth.Token{AccessToken: "abc", Expiry: time.Now().Add(time.Hour)}}

	client := HTTPClient(context.Background(), mgr, "default")
	retry, ok := client.Transport.(*retryTransport)
	require.True(t, ok)
	authed, ok := retry.base.(*oauth2.Transport)
	require.True(t, ok)
	base, ok := authed.Base.(*http.Transport)
	require.True(t, ok)
	assert.False(t, base.ForceAttemptHTTP2)
}

func TestHTTPClientRetriesOnceAfterUnauthorized(t *testing.T) {
	var seen []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := r.Header.Get("Authorization")
		seen = append(seen, tok)
		if tok != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	mgr := &fakeManager{
		tok:  auth.Token{AccessToken: "stale", Expiry: time.Now().Add(time.Hour)},
		next: &auth.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)},
	}
	client := HTTPClient(context.Background(), mgr, "default")

	resp, err := client.Get(backend.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mgr.invalidated)
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, seen)
}

func TestHTTPClientRetriesUnauthorizedOnlyOnce(t *testing.T) {
	var hits int
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	mgr := &fakeManager{tok: auth.Token{AccessToken: "revoked", Expiry: time.Now().Add(time.Hour)}}
	client := HTTPClient(context.Background(), mgr, "default")

	resp, err := client.Get(backend.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, mgr.invalidated)
	assert.Equal(t, 2, hits)
}

func TestClientOptions(t *testing.T) {
	mgr := &fakeManager{tok: auth.Token{AccessToken: "abc"}}
	opts := ClientOptions(context.Background(), mgr, "default")
	assert.Len(t, opts, 1)
}
