// Copyright (c) 2023-2024 D. Bohdan
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
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func StarlarkExit(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var code starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &code); err != nil {
		return nil, err
	}

	if codeInt, ok := code.(starlark.Int); ok {
		exitCode, ok := codeInt.Int64()
		if !ok || exitCode < 0 || exitCode > 255 {
			return nil, fmt.Errorf("exit code out of range")
		}

		return starlark.None, &exitRequestError{Code: int(exitCode)}
	}

	return nil, fmt.Errorf("exit code wasn't 'int'")
}

func StarlarkInspect(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var prefix starlark.String
	var value starlark.Value

	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "prefix?", &prefix); err != nil {
		return nil, err
	}

	prefixStr := ""
	if prefix.Len() > 0 {
		prefixStr = prefix.GoString()
	}

	log.Printf("inspect: %s%v\n", prefixStr, value)

	return value, nil
}

func stepCounts(reports []stepReport) (*starlark.Dict, int, error) {
	counts := starlark.NewDict(len(reports))
	applied := 0

	for _, report := range reports {
		if err := counts.SetKey(starlark.String(report.Name), starlark.MakeInt(report.Count)); err != nil {
			return nil, 0, err
		}

		if report.Count > 0 {
			applied++
		}
	}

	counts.Freeze()

	return counts, applied, nil
}

func evaluateCondition(result patchResult, config patchConfig) (bool, error) {
	thread := &starlark.Thread{Name: "condition"}

	counts, applied, err := stepCounts(result.Reports)
	if err != nil {
		return false, err
	}

	env := starlark.StringDict{
		"exit":    starlark.NewBuiltin("exit", StarlarkExit),
		"inspect": starlark.NewBuiltin("inspect", StarlarkInspect),

		"applied": starlark.MakeInt(applied),
		"changed": starlark.Bool(result.Changed),
		"dry_run": starlark.Bool(config.DryRun),
		"steps":   counts,
	}

	val, err := starlark.EvalOptions(syntax.LegacyFileOptions(), thread, "", config.Condition, env)
	if err != nil {
		var exitErr *exitRequestError
		if errors.As(err, &exitErr) {
			return false, exitErr
		}

		return false, err
	}

	return bool(val.Truth()), nil
}
