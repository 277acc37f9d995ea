package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const group = `{
  "members": ["A", "B", "C"],
  "expenses": [
    {"id": "e1", "description": "Dinner", "amount": 90, "paidBy": "A", "splitBetween": ["A", "B", "C"]},
    {"id": "e2", "description": "Taxi", "amount": 30, "paidBy": "B", "splitBetween": ["B", "C"]}
  ]
}`

func TestRun_Tables(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(group), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "+60.00")
	assert.Contains(t, out, "2 expenses, 120.00 total")
	assert.Contains(t, out, "Settlement (netted):")
	assert.Contains(t, out, "C pays A 45.00")
	assert.Contains(t, out, "B pays A 15.00")
}

func TestRun_PerExpenseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.json")
	require.NoError(t, os.WriteFile(path, []byte(group), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", path, "-mode", "per-expense"}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "C pays B 15.00  [Taxi]")
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-json"}, strings.NewReader(group), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out.Balances, 3)
	assert.Equal(t, -45.0, out.Balances[2].Balance)
	assert.Equal(t, "netted", out.Settlement.Mode)
	assert.Len(t, out.Settlement.Transactions, 2)
}

func TestRun_AllSettled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(`{"members":["A","B"],"expenses":[]}`), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "All settled.")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		input   string
		code    int
		wantErr string
	}{
		{"unknown member", nil, `{"members":["A"],"expenses":[{"amount":5,"paidBy":"Z","splitBetween":["A"]}]}`, 1, `unknown member "Z"`},
		{"bad json", nil, `{"members":`, 1, "parse group"},
		{"unknown field", nil, `{"people":["A"]}`, 1, "parse group"},
		{"bad mode", []string{"-mode", "cheapest"}, group, 1, "unknown settlement mode"},
		{"missing file", []string{"-in", "/does/not/exist.json"}, "", 1, "no such file"},
		{"bad flag", []string{"-nope"}, "", 2, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.input), &stdout, &stderr)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr.String(), tt.wantErr)
		})
	}
}
