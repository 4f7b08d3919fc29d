package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	year := time.Now().Year()
	holidays := fmt.Sprintf(`# test calendar
%[1]d-01-01 TR OFFICIAL - Yılbaşı
%[1]d-10-29 TR NATIONAL - Cumhuriyet Bayramı
2025-05-01 TR OFFICIAL - Emek ve Dayanışma Günü
2025-05-19 TR NATIONAL students Gençlik ve Spor Bayramı
`, year)
	holidayFile := filepath.Join(dir, "holidays.txt")
	require.NoError(t, os.WriteFile(holidayFile, []byte(holidays), 0o644))

	config := fmt.Sprintf(`calendar:
  source: file
  file: %s
defaults:
  country: TR
  language: en
countries:
  TR: Turkey
log:
  level: error
`, holidayFile)
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(config), 0o644))

	return configFile
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAskCommand(t *testing.T) {
	configFile := writeTestConfig(t)

	out, err := run(t, "", "--config", configFile, "ask", "How", "many", "holidays", "per", "year?")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("In %d, Turkey has 2 holidays throughout the year.\n", time.Now().Year()), out)
}

func TestAskCommand_Stdin(t *testing.T) {
	configFile := writeTestConfig(t)

	out, err := run(t, "How many holidays per year?\n\n  How many holidays in a year?\n", "--config", configFile, "ask", "--lang", "tr")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, fmt.Sprintf("%d yılında Turkey için toplam 2 tatil var.", time.Now().Year()), line)
	}
}

func TestWorkdaysCommand(t *testing.T) {
	configFile := writeTestConfig(t)

	out, err := run(t, "", "--config", configFile, "workdays", "--from", "2025-05-31", "--to", "01/05/2025")
	require.NoError(t, err)
	assert.Equal(t, "Between 01/05/2025 and 31/05/2025 in Turkey:\n"+
		"• Total days: 31\n"+
		"• Holiday days: 2\n"+
		"• Weekend days: 9\n"+
		"• Working days: 20\n", out)

	_, err = run(t, "", "--config", configFile, "workdays", "--from", "yesterday", "--to", "01/05/2025")
	assert.ErrorContains(t, err, "invalid --from")
}

func TestOptimizeCommand_JSON(t *testing.T) {
	configFile := writeTestConfig(t)

	out, err := run(t, "", "--config", configFile, "optimize", "--year", "2025", "--days", "1", "--json")
	require.NoError(t, err)

	var payload struct {
		Intent     string           `json:"intent"`
		Outcome    string           `json:"outcome"`
		Candidates []map[string]any `json:"candidates"`
		Reply      string           `json:"reply"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "VacationOptimizationQuery", payload.Intent)
	assert.Equal(t, "answered", payload.Outcome)
	assert.NotEmpty(t, payload.Candidates)
	assert.True(t, strings.HasPrefix(payload.Reply, "Based on your 1 available vacation days"), payload.Reply)

	_, err = run(t, "", "--config", configFile, "optimize", "--days", "0")
	assert.ErrorContains(t, err, "--days must be positive")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "ask", "hello")
	assert.ErrorContains(t, err, "failed to load config")
}
