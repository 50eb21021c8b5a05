package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestSetupUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "bogus")

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestAnonymizeEmail(t *testing.T) {
	a := AnonymizeEmail("user@example.com")
	b := AnonymizeEmail("user@example.com")
	c := AnonymizeEmail("other@example.com")

	assert.Equal(t, a, b, "same email must hash identically")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "user:"))
	assert.NotContains(t, a, "example.com")
	assert.Empty(t, AnonymizeEmail(""))
}

func TestAccountAttributeHidesEmail(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("op done", Account("secret@example.com"))

	out := buf.String()
	assert.NotContains(t, out, "secret@example.com")
	assert.Contains(t, out, "user:")
}

func TestErrNilSafe(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("fine", Err(nil))
	assert.NotContains(t, buf.String(), "error=")
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	masked := SanitizeToken("ya29.secret-token")
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "17 chars")
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "example.com", ExtractDomain("user@example.com"))
	assert.Empty(t, ExtractDomain("not-an-email"))
	assert.Empty(t, ExtractDomain(""))
}
