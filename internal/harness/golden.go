package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/assetsaving/internal/record"
)

// MarshalTrace renders a scenario's trace as canonical JSON:
//
//	{"scenario":"<name>","trace":[{"step":0,"seq":1,"transition":"issue","outcome":"accepted"}]}
//
// Rejected events add code, rule and message, in that order.
func MarshalTrace(name string, result *Result) ([]byte, error) {
	events := make([][]byte, len(result.Trace))
	for i, ev := range result.Trace {
		obj := record.NewObject().
			Int("step", int64(ev.Step)).
			Int("seq", ev.Seq).
			String("transition", ev.Transition).
			String("outcome", ev.Outcome)
		if ev.Code != "" {
			obj.String("code", ev.Code).
				String("rule", ev.Rule).
				String("message", ev.Message)
		}
		b, err := obj.Bytes()
		if err != nil {
			return nil, fmt.Errorf("trace event %d: %w", i, err)
		}
		events[i] = b
	}

	return record.NewObject().
		String("scenario", name).
		Array("trace", events).
		Bytes()
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the given result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
