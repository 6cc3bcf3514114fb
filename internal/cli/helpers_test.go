package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const issueDoc = `
transition: issue
eval_time: 2026-10-16T09:00:00Z
parties:
  bank-a: {name: "O=BankA,L=London,C=GB"}
  customer-b: {}
produced:
  - bank: bank-a
    customer: customer-b
    start_date: 2026-11-15
    accumulation: {currency: USD, quantity: 100}
signers: [bank-a, customer-b]
`

const transferDoc = `
transition: transfer
eval_time: 2026-10-16T09:00:00Z
parties:
  bank-a: {}
  customer-b: {}
  bank-c: {}
  customer-d: {}
consumed:
  - bank: bank-a
    customer: customer-b
    start_date: 2026-11-15
    accumulation: {currency: USD, quantity: 100}
    id: 00000000-0000-0000-0000-00000000000a
produced:
  - bank: bank-c
    customer: customer-d
    start_date: 2026-12-01
    accumulation: {currency: USD, quantity: 100}
    id: 00000000-0000-0000-0000-00000000000a
signers: [bank-a, customer-b, bank-c]
`

const accumulateDoc = `
transition: accumulate
eval_time: 2026-10-16T09:00:00Z
`

// writeDoc writes content to name under dir and returns its path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
