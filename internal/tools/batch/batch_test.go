package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		param   any
		want    []string
		wantErr bool
	}{
		{"single string", "id-1", []string{"id-1"}, false},
		{"array", []any{"id-1", "id-2"}, []string{"id-1", "id-2"}, false},
		{"nil", nil, nil, true},
		{"empty string", "", nil, true},
		{"empty array", []any{}, nil, true},
		{"non-string element", []any{"id-1", 42}, nil, true},
		{"empty element", []any{"id-1", ""}, nil, true},
		{"number", 42, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.param, "ids")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "ids")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessBatchPartialFailure(t *testing.T) {
	results := ProcessBatch([]string{"a", "b", "c"}, func(id string) (string, error) {
		if id == "b" {
			return "", errors.New("boom")
		}
		return fmt.Sprintf("done %s", id), nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, "success", results[0].Status)
	assert.Equal(t, "error", results[1].Status)
	assert.Equal(t, "boom", results[1].Error)
	assert.Equal(t, "success", results[2].Status)
	assert.Equal(t, "done c", results[2].Result)
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{ID: "a", Status: "success", Result: "ok"},
		{ID: "b", Status: "error", Error: "boom"},
	}

	var br BatchResult
	require.NoError(t, json.Unmarshal([]byte(FormatResults(results)), &br))
	assert.Equal(t, 2, br.Total)
	assert.Equal(t, 1, br.Successful)
	assert.Equal(t, 1, br.Failed)
	assert.Len(t, br.Results, 2)
}
