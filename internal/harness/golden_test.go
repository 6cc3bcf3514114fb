package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestMarshalTrace(t *testing.T) {
	result := NewResult()
	result.Trace = append(result.Trace,
		TraceEvent{Step: 0, Seq: 1, Transition: "issue", Outcome: "accepted"},
		TraceEvent{
			Step:       1,
			Seq:        2,
			Transition: "cancel",
			Outcome:    "rejected",
			Code:       "STRUCTURAL_VIOLATION",
			Rule:       "cancel.no_outputs",
			Message:    "no outputs allowed",
		},
	)

	got, err := MarshalTrace("demo", result)
	require.NoError(t, err)

	want := `{"scenario":"demo","trace":[` +
		`{"step":0,"seq":1,"transition":"issue","outcome":"accepted"},` +
		`{"step":1,"seq":2,"transition":"cancel","outcome":"rejected","code":"STRUCTURAL_VIOLATION","rule":"cancel.no_outputs","message":"no outputs allowed"}]}`
	assert.Equal(t, want, string(got))
}

func TestMarshalTrace_Empty(t *testing.T) {
	got, err := MarshalTrace("empty", NewResult())
	require.NoError(t, err)
	assert.Equal(t, `{"scenario":"empty","trace":[]}`, string(got))
}
