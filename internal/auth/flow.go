package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// DefaultConsentTimeout bounds how long the loopback listener waits for the
// browser callback.
const DefaultConsentTimeout = 5 * time.Minute

// ConsentOptions configures one interactive authorization.
type ConsentOptions struct {
	// Config is the OAuth client configuration (client_secret.json) with
	// the scopes to request. Required.
	Config *oauth2.Config

	// Account names the credential file. When empty the account is
	// resolved from the userinfo endpoint after the exchange, so the file
	// is named after the authorized email address.
	Account string

	// Timeout bounds the wait for the browser callback. Zero means
	// DefaultConsentTimeout.
	Timeout time.Duration

	// Port pins the loopback listener port. Zero picks an ephemeral port.
	Port int

	// OpenBrowser is invoked with the authorization URL. When nil or
	// failing, the URL is logged for the user to open manually.
	OpenBrowser func(url string) error
}

// callbackResult carries the outcome of the redirect back from the browser.
type callbackResult struct {
	code string
	err  error
}

// Authorize runs the OAuth2 authorization-code flow with a local loopback
// redirect: it opens the consent URL, waits (bounded) for the callback,
// exchanges the code, persists the credential, and returns the account name
// it was stored under. The listener port is released on every exit path.
func (m *Manager) Authorize(ctx context.Context, opts ConsentOptions) (string, error) {
	if opts.Config == nil {
		return "", errors.New("consent flow requires an OAuth client configuration")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultConsentTimeout
	}

	lis, err := net.Listen("tcp4", fmt.Sprintf("127.0.0.1:%d", opts.Port))
	if err != nil {
		return "", fmt.Errorf("start loopback listener: %w", err)
	}

	conf := *opts.Config
	conf.RedirectURL = fmt.Sprintf("http://%s/oauth2/callback", lis.Addr().String())

	state, err := randomState()
	if err != nil {
		lis.Close()
		return "", err
	}
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			select {
			case results <- callbackResult{err: errors.New("authorization callback state mismatch")}:
			default:
			}
			return
		}
		if errCode := q.Get("error"); errCode != "" {
			http.Error(w, "authorization denied", http.StatusForbidden)
			select {
			case results <- callbackResult{err: fmt.Errorf("authorization denied: %s", errCode)}:
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Authorization complete. You can close this window.</p></body></html>")
		select {
		case results <- callbackResult{code: q.Get("code")}:
		default:
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(lis)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.S256ChallengeOption(verifier),
	)
	m.openBrowser(opts, authURL)

	var cb callbackResult
	select {
	case cb = <-results:
	case <-time.After(timeout):
		m.metrics.RecordOAuthAuth(ctx, "failure")
		return "", &ConsentTimeoutError{Timeout: timeout}
	case <-ctx.Done():
		m.metrics.RecordOAuthAuth(ctx, "failure")
		return "", ctx.Err()
	}
	if cb.err != nil {
		m.metrics.RecordOAuthAuth(ctx, "failure")
		return "", cb.err
	}
	if cb.code == "" {
		m.metrics.RecordOAuthAuth(ctx, "failure")
		return "", errors.New("authorization callback carried no code")
	}

	tok, err := conf.Exchange(ctx, cb.code, oauth2.VerifierOption(verifier))
	if err != nil {
		m.metrics.RecordOAuthAuth(ctx, "failure")
		// A rejected code (invalid_grant, bad client) is dead; only server
		// or network trouble is worth retrying.
		if isRefreshRejected(err) {
			return "", fmt.Errorf("authorization code exchange rejected: %w", err)
		}
		return "", &TransientError{Op: "authorization code exchange", Err: err}
	}

	account := opts.Account
	if account == "" {
		account, err = m.resolveIdentity(ctx, &conf, tok)
		if err != nil {
			m.logger.Warn("could not resolve account email, storing as default",
				slog.String("error", err.Error()))
			account = "default"
		}
	}
	if err := ValidateAccountName(account); err != nil {
		return "", err
	}

	if err := m.put(account, fromToken(tok, &conf)); err != nil {
		m.metrics.RecordOAuthAuth(ctx, "failure")
		return "", err
	}

	m.metrics.RecordOAuthAuth(ctx, "success")
	m.logger.Info("account authorized", slog.String("account", account))
	return account, nil
}

// openBrowser launches the consent URL, falling back to logging it for the
// user to open by hand.
func (m *Manager) openBrowser(opts ConsentOptions, url string) {
	if opts.OpenBrowser != nil {
		if err := opts.OpenBrowser(url); err == nil {
			return
		}
	}
	m.logger.Info("open this URL in your browser to authorize access",
		slog.String("url", url))
}

// resolveIdentity asks the userinfo endpoint which account just authorized,
// so the credential file can be named after the email address.
func (m *Manager) resolveIdentity(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (string, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return "", fmt.Errorf("create userinfo service: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch userinfo: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("userinfo response carried no email")
	}
	return info.Email, nil
}

func randomState() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
