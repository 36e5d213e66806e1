package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand(t *testing.T) {
	t.Cleanup(func() { exportOut = "" })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"export"})
	require.NoError(t, rootCmd.Execute())

	var doc struct {
		Orders     []json.RawMessage `json:"orders"`
		Passengers []json.RawMessage `json:"passengers"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Orders, 2)
	assert.Len(t, doc.Passengers, 2)

	out := filepath.Join(t.TempDir(), "foodonbus_db.json")
	rootCmd.SetArgs([]string{"export", "--out", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, buf.String(), string(data))
}
