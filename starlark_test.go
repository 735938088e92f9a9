// Copyright (c) 2026 Ismailibrahim
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"errors"
	"strings"
	"testing"
)

var sampleResult = patchResult{
	Text: "fixed",
	Reports: []stepReport{
		{Name: "response-guard", Count: 1},
		{Name: "redirect-guard", Count: 0},
		{Name: "status-declaration", Count: 1},
	},
	Changed: true,
}

func evaluate(t *testing.T, expr string, dryRun bool) (bool, error) {
	t.Helper()

	return evaluateCondition(sampleResult, patchConfig{Condition: expr, DryRun: dryRun})
}

func TestEvaluateConditionGlobals(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"True", true},
		{"changed", true},
		{"not changed", false},
		{"applied == 2", true},
		{"steps['response-guard'] == 1", true},
		{"steps['redirect-guard'] > 0", false},
		{"len(steps) == 3", true},
		{"dry_run", false},
	}

	for _, tt := range tests {
		got, err := evaluate(t, tt.expr, false)
		if err != nil {
			t.Errorf("Condition %q failed: %v", tt.expr, err)
			continue
		}

		if got != tt.want {
			t.Errorf("Condition %q = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEvaluateConditionDryRun(t *testing.T) {
	got, err := evaluate(t, "dry_run and changed", true)
	if err != nil || !got {
		t.Errorf("Expected true, got %v (%v)", got, err)
	}
}

func TestEvaluateConditionTruthiness(t *testing.T) {
	got, err := evaluate(t, "'yes' if changed else ''", false)
	if err != nil || !got {
		t.Errorf("Expected a non-empty string to be truthy, got %v (%v)", got, err)
	}
}

func TestEvaluateConditionExit(t *testing.T) {
	_, err := evaluate(t, "exit(3) if changed else True", false)

	var exitErr *exitRequestError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Expected exit request, got %v", err)
	}

	if exitErr.Code != 3 {
		t.Errorf("Expected exit code 3, got %d", exitErr.Code)
	}
}

func TestEvaluateConditionExitWrongType(t *testing.T) {
	_, err := evaluate(t, "exit('foo')", false)

	if err == nil || !strings.Contains(err.Error(), "exit code wasn't") {
		t.Errorf("Expected \"exit code wasn't\" error, got %v", err)
	}
}

func TestEvaluateConditionExitOutOfRange(t *testing.T) {
	_, err := evaluate(t, "exit(10000000000000000000)", false)

	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Expected 'out of range' error, got %v", err)
	}
}

func TestEvaluateConditionStepsFrozen(t *testing.T) {
	_, err := evaluate(t, "steps.pop('response-guard')", false)

	if err == nil {
		t.Error("Expected an error when mutating steps")
	}
}

func TestEvaluateConditionSyntaxError(t *testing.T) {
	if _, err := evaluate(t, "changed ==", false); err == nil {
		t.Error("Expected a syntax error")
	}
}
