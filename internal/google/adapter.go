package google

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

// TokenManager is the credential surface the adapter needs. Satisfied by
// *auth.Manager.
type TokenManager interface {
	AccessToken(ctx context.Context, account string) (auth.Token, error)
	Invalidate(account string) error
}

// managerTokenSource adapts one (manager, account) pair to oauth2.TokenSource.
// Each Token call goes through the manager, which serves cached tokens without
// network I/O and refreshes single-flight when needed.
type managerTokenSource struct {
	ctx     context.Context
	manager TokenManager
	account string
}

// TokenSource returns an oauth2.TokenSource for the account, backed by the
// credential manager. The context is captured for refresh calls, matching how
// oauth2.Config.TokenSource binds its context.
func TokenSource(ctx context.Context, manager TokenManager, account string) oauth2.TokenSource {
	return &managerTokenSource{ctx: ctx, manager: manager, account: account}
}

func (s *managerTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.manager.AccessToken(s.ctx, s.account)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: tok.AccessToken,
		TokenType:   "Bearer",
		Expiry:      tok.Expiry,
	}, nil
}

// HTTPClient returns an authenticated HTTP client for the account, pinned to
// HTTP/1.1. A request the vendor rejects with 401 invalidates the credential
// and is retried once with a freshly obtained token.
func HTTPClient(ctx context.Context, manager TokenManager, account string) *http.Client {
	return &http.Client{
		Transport: &retryTransport{
			base: &oauth2.Transport{
				Source: TokenSource(ctx, manager, account),
				Base:   &http.Transport{ForceAttemptHTTP2: false},
			},
			manager: manager,
			account: account,
		},
	}
}

// retryTransport retries a 401-rejected request once after invalidating the
// account's credential, so a token revoked mid-call surfaces as an
// actionable auth error instead of a raw vendor rejection.
type retryTransport struct {
	base    http.RoundTripper
	manager TokenManager
	account string
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A consumed body that cannot be replayed rules out a retry.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}
	if err := t.manager.Invalidate(t.account); err != nil {
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return resp, nil
		}
		retry.Body = body
	}
	resp.Body.Close()
	return t.base.RoundTrip(retry)
}

// ClientOptions returns the option set for constructing a Google API service
// bound to the account's credentials.
func ClientOptions(ctx context.Context, manager TokenManager, account string) []option.ClientOption {
	return []option.ClientOption{
		option.WithHTTPClient(HTTPClient(ctx, manager, account)),
	}
}
