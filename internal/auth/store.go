package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CredentialsDirEnv overrides the default credentials directory.
const CredentialsDirEnv = "GOOGLE_WORKSPACE_MCP_DIR"

// ErrNotFound is returned by FileStore.Load when no credential is persisted
// for the account (including when the persisted file is unreadable JSON,
// which is treated as absent per the lifecycle contract).
var ErrNotFound = errors.New("credential not found")

// DefaultCredentialsDir returns the per-user credentials directory,
// one JSON file per authorized account.
func DefaultCredentialsDir() string {
	if d := os.Getenv(CredentialsDirEnv); d != "" {
		return filepath.Join(d, "credentials")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".google_workspace_mcp", "credentials")
	}
	return filepath.Join(home, ".google_workspace_mcp", "credentials")
}

// FileStore persists one credential file per account under a directory.
// Writes go through a temp file plus rename so a crash never leaves a
// half-written credential.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on
// first write, not here.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the credential file path for an account.
func (s *FileStore) Path(account string) string {
	return filepath.Join(s.dir, account+".json")
}

// ValidateAccountName rejects account names that cannot safely become file
// names. Email addresses are the common case ("user@example.com").
func ValidateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if account == "." || account == ".." {
		return fmt.Errorf("invalid account name %q", account)
	}
	for _, r := range account {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '_', r == '@', r == '+':
		default:
			return fmt.Errorf("invalid account name %q: character %q not allowed", account, r)
		}
	}
	return nil
}

// Load reads the persisted credential for an account. A missing or corrupt
// file yields ErrNotFound; anything else (permissions, I/O) yields a
// PersistenceError.
func (s *FileStore) Load(account string) (*Credential, error) {
	if err := ValidateAccountName(account); err != nil {
		return nil, err
	}
	path := s.Path(account)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("account %q: %w", account, ErrNotFound)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		// Corrupt state is indistinguishable from no state for the caller.
		return nil, fmt.Errorf("account %q: corrupt credential file: %w", account, ErrNotFound)
	}
	return &cred, nil
}

// Save atomically writes the credential for an account with owner-only
// permissions.
func (s *FileStore) Save(account string, cred *Credential) error {
	if err := ValidateAccountName(account); err != nil {
		return err
	}
	path := s.Path(account)
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+account+".json.tmp*")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := tmp.Chmod(0o600); err != nil {
		return cleanup(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Delete removes the persisted credential for an account. Deleting a
// credential that does not exist is not an error.
func (s *FileStore) Delete(account string) error {
	if err := ValidateAccountName(account); err != nil {
		return err
	}
	path := s.Path(account)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &PersistenceError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// List returns the accounts that have a persisted credential, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.dir, Err: err}
	}
	var accounts []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		accounts = append(accounts, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(accounts)
	return accounts, nil
}
