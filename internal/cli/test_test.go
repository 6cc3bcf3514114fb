package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

const passingScenario = `
name: issue_ok
description: "A valid issue"
eval_time: 2026-10-16T09:00:00Z
parties:
  bank-a: {}
  customer-b: {}
records:
  position:
    bank: bank-a
    customer: customer-b
    start_date: 2026-11-15
    accumulation: {currency: USD, quantity: 100}
steps:
  - transition: issue
    produced: [position]
    signers: [bank-a, customer-b]
    expect: {accept: true}
`

const failingScenario = `
name: wrong_expectation
description: "Expects a valid issue to be refused"
eval_time: 2026-10-16T09:00:00Z
parties:
  bank-a: {}
  customer-b: {}
records:
  position:
    bank: bank-a
    customer: customer-b
    start_date: 2026-11-15
    accumulation: {currency: USD, quantity: 100}
steps:
  - transition: issue
    produced: [position]
    signers: [bank-a, customer-b]
    expect: {accept: false}
`

// scenarioTree creates <tmp>/scenarios with the given files and returns the
// scenarios and golden directory paths.
func scenarioTree(t *testing.T, files map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()
	scenariosDir := filepath.Join(root, "scenarios")
	require.NoError(t, os.MkdirAll(scenariosDir, 0755))
	for name, content := range files {
		writeDoc(t, scenariosDir, name, content)
	}
	return scenariosDir, filepath.Join(root, "golden")
}

func TestTestCommandMissingArgs(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	scenariosDir, _ := scenarioTree(t, nil)

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	scenariosDir, _ := scenarioTree(t, nil)

	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{scenariosDir})

	require.NoError(t, cmd.Execute())

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", harnessScenarios)
	require.NoError(t, err, stdout)

	assert.Contains(t, stdout, "✓ issue_accepted")
	assert.Contains(t, stdout, "✓ transfer_three_signers")
	assert.Contains(t, stdout, "✓ position_lifecycle")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "test", harnessScenarios, "--filter", "transfer_*")
	require.NoError(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, 2, response.Data.Total)
	assert.Equal(t, 2, response.Data.Passed)
	for _, s := range response.Data.Scenarios {
		assert.Contains(t, s.Name, "transfer_")
	}
}

func TestTestCommandFailingScenario(t *testing.T) {
	scenariosDir, _ := scenarioTree(t, map[string]string{
		"ok.yaml":    passingScenario,
		"wrong.yaml": failingScenario,
	})

	stdout, _, err := execute(t, "test", scenariosDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✓ issue_ok")
	assert.Contains(t, stdout, "✗ wrong_expectation")
	assert.Contains(t, stdout, "expected reject, got accepted")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandUpdateWritesGolden(t *testing.T) {
	scenariosDir, goldenDir := scenarioTree(t, map[string]string{"ok.yaml": passingScenario})

	_, _, err := execute(t, "test", scenariosDir, "--update")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(goldenDir, "issue_ok.golden"))
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario":"issue_ok","trace":[{"step":0,"seq":1,"transition":"issue","outcome":"accepted"}]}`,
		string(data))

	// The written golden now governs later runs.
	_, _, err = execute(t, "test", scenariosDir)
	require.NoError(t, err)
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	scenariosDir, goldenDir := scenarioTree(t, map[string]string{"ok.yaml": passingScenario})
	require.NoError(t, os.MkdirAll(goldenDir, 0755))
	writeDoc(t, goldenDir, "issue_ok.golden", `{"scenario":"issue_ok","trace":[]}`)

	stdout, _, err := execute(t, "test", scenariosDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "trace does not match golden file")
}

func TestTestCommandLoadError(t *testing.T) {
	scenariosDir, _ := scenarioTree(t, map[string]string{"broken.yaml": "name: broken\n"})

	stdout, _, err := execute(t, "test", scenariosDir)
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestFindScenarioFiles(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "issue_ok.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "issue_late.yml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "cancel_ok.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte(""), 0644))

	files, err := findScenarioFiles(tmpDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = findScenarioFiles(tmpDir, "issue_*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = findScenarioFiles(tmpDir, "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}
