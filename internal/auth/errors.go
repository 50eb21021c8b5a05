package auth

import (
	"errors"
	"fmt"
	"time"
)

// NoCredentialError indicates that no usable credential is persisted for an
// account and the current context cannot run interactive consent.
type NoCredentialError struct {
	Account string
}

func (e *NoCredentialError) Error() string {
	return fmt.Sprintf("no Google credential found for account %q; run \"workspace-mcp auth\" to authorize", e.Account)
}

// ConsentTimeoutError indicates the interactive consent flow did not receive
// an authorization callback within the allowed window.
type ConsentTimeoutError struct {
	Timeout time.Duration
}

func (e *ConsentTimeoutError) Error() string {
	return fmt.Sprintf("authorization was not completed within %s", e.Timeout)
}

// RefreshRejectedError indicates the authorization server rejected the
// refresh token (revoked, expired, or absent). The persisted credential has
// been deleted; the account must re-authorize interactively.
type RefreshRejectedError struct {
	Account string
	Err     error
}

func (e *RefreshRejectedError) Error() string {
	return fmt.Sprintf("Google rejected the refresh token for account %q: %v; run \"workspace-mcp auth\" to re-authorize", e.Account, e.Err)
}

func (e *RefreshRejectedError) Unwrap() error { return e.Err }

// TransientError indicates a refresh or exchange failed for connectivity or
// server-side reasons after bounded retries. The stale credential is left in
// place and the operation may be retried.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed after retries: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PersistenceError indicates the credential file could not be read or
// written. Any valid in-memory credential is preserved.
type PersistenceError struct {
	Op   string // "load", "save", "delete"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s credential file %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsRetryable reports whether err may succeed on a later attempt without
// user interaction.
func IsRetryable(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsAuthRequired reports whether err can only be resolved by running the
// interactive consent flow again.
func IsAuthRequired(err error) bool {
	var nce *NoCredentialError
	var rre *RefreshRejectedError
	return errors.As(err, &nce) || errors.As(err, &rre)
}
