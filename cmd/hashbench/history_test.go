package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashbench/internal/store"
)

func saveTestRun(t *testing.T, report string) {
	t.Helper()
	s, err := store.NewSQLiteStore(viper.GetString("history_db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(store.Run{
		CreatedAt: time.Now(),
		Commit:    "cafe123",
		Report:    json.RawMessage(report),
	})
	require.NoError(t, err)
}

func TestHistoryEmpty(t *testing.T) {
	setTestConfig(t)

	var buf bytes.Buffer
	historyLast = false
	require.NoError(t, runHistory(newOutCommand(&buf), nil))
	assert.Contains(t, buf.String(), "No saved runs.")
}

func TestHistoryListsRuns(t *testing.T) {
	setTestConfig(t)
	saveTestRun(t, `{"LookupHitTest":{"OpenTable":[[100,0.1]]}}`)

	var buf bytes.Buffer
	historyLast = false
	require.NoError(t, runHistory(newOutCommand(&buf), nil))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "cafe123")
}

func TestHistoryLast(t *testing.T) {
	setTestConfig(t)
	saveTestRun(t, `{"a":{}}`)
	saveTestRun(t, `{"b":{}}`)

	var buf bytes.Buffer
	historyLast = true
	defer func() { historyLast = false }()
	require.NoError(t, runHistory(newOutCommand(&buf), nil))
	assert.JSONEq(t, `{"b":{}}`, buf.String())
}

func TestHistoryLastEmpty(t *testing.T) {
	setTestConfig(t)

	historyLast = true
	defer func() { historyLast = false }()
	err := runHistory(newOutCommand(new(bytes.Buffer)), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved runs")
}
