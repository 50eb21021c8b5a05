package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultExpiryMargin is how long before actual expiry a token is
	// treated as expired, so it cannot lapse mid-flight on a request.
	DefaultExpiryMargin = 60 * time.Second

	// DefaultRefreshRetries bounds retries of transient refresh failures.
	DefaultRefreshRetries = 3
)

// Token is the read-only snapshot handed to callers: enough to attach a
// bearer credential to one outbound request.
type Token struct {
	AccessToken string
	Expiry      time.Time
}

// RefreshRecorder receives refresh outcomes for metrics. Implemented by
// instrumentation.Metrics; nil-safe via the noop default.
type RefreshRecorder interface {
	RecordOAuthTokenRefresh(ctx context.Context, result string)
	RecordOAuthAuth(ctx context.Context, result string)
}

type noopRecorder struct{}

func (noopRecorder) RecordOAuthTokenRefresh(context.Context, string) {}
func (noopRecorder) RecordOAuthAuth(context.Context, string)         {}

// Manager owns one credential per account: loading, refreshing, persisting,
// and invalidating. Token reads on a valid credential are lock-cheap and
// never touch the network; refreshes are single-flight per account so
// concurrent callers share one refresh and one file write.
type Manager struct {
	store    *FileStore
	fallback *oauth2.Config // client config for files missing client fields
	margin   time.Duration
	retries  uint
	now      func() time.Time
	logger   *slog.Logger
	metrics  RefreshRecorder
	backoffs func() backoff.BackOff

	group singleflight.Group

	mu    sync.RWMutex
	creds map[string]*Credential
}

// Option configures a Manager.
type Option func(*Manager)

// WithExpiryMargin overrides the safety margin applied to token expiry.
func WithExpiryMargin(d time.Duration) Option {
	return func(m *Manager) { m.margin = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithFallbackConfig supplies the OAuth client config used when a persisted
// credential omits its client identifier or token endpoint.
func WithFallbackConfig(conf *oauth2.Config) Option {
	return func(m *Manager) { m.fallback = conf }
}

// WithMetrics wires a metrics recorder for refresh and consent outcomes.
func WithMetrics(r RefreshRecorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.metrics = r
		}
	}
}

// WithRefreshRetries bounds the transient-failure retry count.
func WithRefreshRetries(n uint) Option {
	return func(m *Manager) { m.retries = n }
}

// WithRefreshBackOff overrides the retry schedule factory, for tests.
func WithRefreshBackOff(factory func() backoff.BackOff) Option {
	return func(m *Manager) { m.backoffs = factory }
}

// NewManager creates a Manager over the given credential store.
func NewManager(store *FileStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		margin:  DefaultExpiryMargin,
		retries: DefaultRefreshRetries,
		now:     time.Now,
		logger:  slog.Default(),
		metrics: noopRecorder{},
		backoffs: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			return b
		},
		creds: make(map[string]*Credential),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AccessToken returns a currently valid access token for the account,
// refreshing transparently when the persisted token is expired or within
// the safety margin. It never starts interactive consent: with no usable
// credential it fails with NoCredentialError.
func (m *Manager) AccessToken(ctx context.Context, account string) (Token, error) {
	cred, err := m.credential(account)
	if err != nil {
		return Token{}, err
	}

	if cred.ValidAt(m.now(), m.margin) {
		return Token{AccessToken: cred.AccessToken, Expiry: cred.Expiry}, nil
	}

	// One refresh in flight per account; late arrivals reuse its result.
	v, err, _ := m.group.Do(account, func() (any, error) {
		return m.refresh(ctx, account)
	})
	if err != nil {
		return Token{}, err
	}
	return v.(Token), nil
}

// Invalidate deletes the credential for an account, both in memory and on
// disk, forcing the next AccessToken call down the no-credential path. It is
// idempotent.
func (m *Manager) Invalidate(account string) error {
	m.mu.Lock()
	delete(m.creds, account)
	m.mu.Unlock()
	return m.store.Delete(account)
}

// HasCredential reports whether a credential exists for the account, in
// memory or on disk, without validating it.
func (m *Manager) HasCredential(account string) bool {
	m.mu.RLock()
	_, ok := m.creds[account]
	m.mu.RUnlock()
	if ok {
		return true
	}
	_, err := m.store.Load(account)
	return err == nil
}

// Accounts lists accounts with persisted credentials.
func (m *Manager) Accounts() ([]string, error) {
	return m.store.List()
}

// Status describes one account's credential for diagnostics. The access
// token itself is deliberately not included.
type Status struct {
	Account     string    `json:"account"`
	Authorized  bool      `json:"authorized"`
	Valid       bool      `json:"valid"`
	Refreshable bool      `json:"refreshable"`
	Expiry      time.Time `json:"expiry,omitzero"`
	Scopes      []string  `json:"scopes,omitempty"`
}

// Status reports the credential state for an account.
func (m *Manager) Status(account string) Status {
	st := Status{Account: account}
	cred, err := m.credential(account)
	if err != nil {
		return st
	}
	st.Authorized = true
	st.Valid = cred.ValidAt(m.now(), m.margin)
	st.Refreshable = cred.HasRefreshToken()
	st.Expiry = cred.Expiry
	st.Scopes = cred.Scopes
	return st
}

// credential returns the in-memory credential for an account, loading it
// from the store on first access.
func (m *Manager) credential(account string) (*Credential, error) {
	m.mu.RLock()
	cred, ok := m.creds[account]
	m.mu.RUnlock()
	if ok {
		return cred, nil
	}

	cred, err := m.store.Load(account)
	if errors.Is(err, ErrNotFound) {
		return nil, &NoCredentialError{Account: account}
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	// Another goroutine may have loaded (or authorized) concurrently.
	if existing, ok := m.creds[account]; ok {
		cred = existing
	} else {
		m.creds[account] = cred
	}
	m.mu.Unlock()
	return cred, nil
}

// put installs a freshly obtained credential in memory and persists it.
func (m *Manager) put(account string, cred *Credential) error {
	m.mu.Lock()
	m.creds[account] = cred
	m.mu.Unlock()
	return m.store.Save(account, cred)
}

// drop removes the credential from memory and disk after a terminal refresh
// rejection.
func (m *Manager) drop(account string) {
	m.mu.Lock()
	delete(m.creds, account)
	m.mu.Unlock()
	if err := m.store.Delete(account); err != nil {
		m.logger.Warn("failed to delete rejected credential",
			slog.String("account", account), slog.String("error", err.Error()))
	}
}

// refresh exchanges the refresh token for a new access token, with bounded
// backoff on transient failures. Runs inside the per-account single-flight
// group.
func (m *Manager) refresh(ctx context.Context, account string) (Token, error) {
	cred, err := m.credential(account)
	if err != nil {
		return Token{}, err
	}

	// A caller that queued behind an in-flight refresh sees its result here.
	if cred.ValidAt(m.now(), m.margin) {
		return Token{AccessToken: cred.AccessToken, Expiry: cred.Expiry}, nil
	}

	if !cred.HasRefreshToken() {
		m.drop(account)
		m.metrics.RecordOAuthTokenRefresh(ctx, "expired")
		return Token{}, &RefreshRejectedError{Account: account, Err: errors.New("credential has no refresh token")}
	}

	conf := cred.oauthConfig(m.fallback)
	operation := func() (*oauth2.Token, error) {
		ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
		tok, err := ts.Token()
		if err != nil {
			if isRefreshRejected(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return tok, nil
	}

	tok, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(m.backoffs()),
		backoff.WithMaxTries(m.retries),
	)
	if err != nil {
		if isRefreshRejected(err) {
			m.logger.Warn("refresh token rejected, credential deleted",
				slog.String("account", account))
			m.drop(account)
			m.metrics.RecordOAuthTokenRefresh(ctx, "expired")
			return Token{}, &RefreshRejectedError{Account: account, Err: err}
		}
		// Transient: leave the stale credential in place, it may still
		// refresh once connectivity returns.
		m.metrics.RecordOAuthTokenRefresh(ctx, "failure")
		return Token{}, &TransientError{Op: fmt.Sprintf("token refresh for account %q", account), Err: err}
	}

	updated := *cred
	updated.AccessToken = tok.AccessToken
	updated.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		// Server rotated the refresh token.
		updated.RefreshToken = tok.RefreshToken
	}

	if err := m.put(account, &updated); err != nil {
		// The refreshed token stays usable in memory; surface the disk
		// problem so the operator fixes it before the persisted copy
		// diverges further.
		m.metrics.RecordOAuthTokenRefresh(ctx, "success")
		return Token{}, err
	}

	m.metrics.RecordOAuthTokenRefresh(ctx, "success")
	m.logger.Debug("access token refreshed",
		slog.String("account", account), slog.Time("expiry", updated.Expiry))
	return Token{AccessToken: updated.AccessToken, Expiry: updated.Expiry}, nil
}

// isRefreshRejected reports whether a token-endpoint error means the grant
// itself is dead (revoked or expired refresh token, bad client) rather than
// a transient server or network problem.
func isRefreshRejected(err error) bool {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return false
	}
	switch re.ErrorCode {
	case "invalid_grant", "unauthorized_client", "invalid_client":
		return true
	}
	if re.Response != nil {
		switch re.Response.StatusCode {
		case 400, 401, 403:
			return true
		}
	}
	return false
}
