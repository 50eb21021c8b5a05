package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"nil args", nil, "default"},
		{"no account", map[string]any{"query": "x"}, "default"},
		{"empty account", map[string]any{"account": ""}, "default"},
		{"explicit account", map[string]any{"account": "work@example.com"}, "work@example.com"},
		{"non-string account", map[string]any{"account": 42}, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetAccountFromArgs(tt.args))
		})
	}
}
