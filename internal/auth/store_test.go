package auth

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredential() *Credential {
	return &Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     "cid",
		ClientSecret: "cs",
		Scopes:       []string{"https://www.googleapis.com/auth/tasks"},
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond),
	}
}

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"default", "default", false},
		{"email", "user@example.com", false},
		{"plus address", "user+mcp@example.com", false},
		{"hyphen underscore", "work-email_2", false},
		{"empty", "", true},
		{"spaces", "my account", true},
		{"slash", "a/b", true},
		{"parent dir", "..", true},
		{"backslash", `a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccountName(%q) error = %v, wantErr %v", tt.account, err, tt.wantErr)
			}
		})
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	cred := testCredential()

	require.NoError(t, store.Save("user@example.com", cred))

	// A fresh store instance must see byte-identical fields.
	got, err := NewFileStore(dir).Load("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, cred.AccessToken, got.AccessToken)
	assert.Equal(t, cred.RefreshToken, got.RefreshToken)
	assert.Equal(t, cred.Scopes, got.Scopes)
	assert.True(t, cred.Expiry.Equal(got.Expiry))
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "credentials"))
	require.NoError(t, store.Save("default", testCredential()))

	info, err := os.Stat(store.Path("default"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	_, err := store.Load("nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, os.WriteFile(store.Path("default"), []byte("{not json"), 0o600))

	_, err := store.Load("default")
	assert.True(t, errors.Is(err, ErrNotFound), "corrupt file should read as absent, got %v", err)
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save("default", testCredential()))
	require.NoError(t, store.Delete("default"))
	require.NoError(t, store.Delete("default"), "second delete must not error")

	_, err := store.Load("default")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreList(t *testing.T) {
	store := NewFileStore(t.TempDir())

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts, "empty store lists nothing")

	require.NoError(t, store.Save("work@example.com", testCredential()))
	require.NoError(t, store.Save("default", testCredential()))

	accounts, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "work@example.com"}, accounts)
}

func TestFileStoreNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	require.NoError(t, store.Save("default", testCredential()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "default.json", entries[0].Name())
}
