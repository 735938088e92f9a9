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
	"io"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

const (
	defaultTarget   = "frontend/src/app/properties/[id]/edit/page.tsx"
	exitCodeError   = 1
	maxVerboseLevel = 2
	successMessage  = "Fixed syntax errors"
	version         = "1.0.0"
)

var errConditionNotMet = errors.New("condition not met; file left unchanged")

type patchConfig struct {
	Path      string
	Condition string
	DryRun    bool
	Verbose   int
}

type cli struct {
	Version   kong.VersionFlag `short:"V" help:"print version number and exit"`
	Condition string           `default:"True" short:"c" help:"write condition (Starlark expression)"`
	DryRun    bool             `short:"n" name:"dry-run" help:"print the result instead of writing the file"`
	File      string           `default:"${target}" short:"f" help:"file to patch"`
	List      bool             `short:"l" help:"list substitution steps and exit"`
	Verbose   int              `short:"v" type:"counter" help:"increase verbosity"`
}

type elapsedTimeWriter struct {
	startTime time.Time
}

type exitRequestError struct {
	Code int
}

func (w *elapsedTimeWriter) Write(bytes []byte) (int, error) {
	elapsed := time.Since(w.startTime)

	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	deciseconds := elapsed.Milliseconds() % 1000 / 100

	return fmt.Fprintf(os.Stderr, "fixsyntax [%02d:%02d:%02d.%01d]: %s", hours, minutes, seconds, deciseconds, string(bytes))
}

func (e *exitRequestError) Error() string {
	return fmt.Sprintf("exit requested with code %d", e.Code)
}

func readDocument(path string) (string, os.FileMode, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %q: %w", path, err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %q: %w", path, err)
	}

	return string(content), info.Mode().Perm(), nil
}

func writeDocument(path, text string, mode os.FileMode) error {
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}

	return nil
}

func patch(config patchConfig, stdout io.Writer) (int, error) {
	customWriter := &elapsedTimeWriter{
		startTime: time.Now(),
	}
	logger := log.New(customWriter, "", 0)

	log.SetOutput(customWriter)
	log.SetFlags(0)

	if config.Verbose >= 2 {
		logger.Printf("configuration:\n%s\n", repr.String(config, repr.Indent("\t")))
	}

	text, mode, err := readDocument(config.Path)
	if err != nil {
		return exitCodeError, err
	}

	result := applySteps(text, pipeline)

	if config.Verbose >= 1 {
		for _, report := range result.Reports {
			logger.Printf("step %q made %d replacement(s)", report.Name, report.Count)
		}
	}

	success, err := evaluateCondition(result, config)
	if err != nil {
		var exitErr *exitRequestError
		if errors.As(err, &exitErr) {
			return exitErr.Code, nil
		}

		return exitCodeError, fmt.Errorf("condition evaluation failed: %w", err)
	}

	if !success {
		return exitCodeError, errConditionNotMet
	}

	if config.DryRun {
		if _, err := io.WriteString(stdout, result.Text); err != nil {
			return exitCodeError, err
		}

		return 0, nil
	}

	if err := writeDocument(config.Path, result.Text, mode); err != nil {
		return exitCodeError, err
	}

	if config.Verbose >= 1 {
		logger.Printf("wrote %d bytes to %q", len(result.Text), config.Path)
	}

	fmt.Fprintln(stdout, successMessage)

	return 0, nil
}

func main() {
	var cliConfig cli
	kongCtx := kong.Parse(&cliConfig,
		kong.Name("fixsyntax"),
		kong.Description("Patch the malformed error handling in the property edit page."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{WrapUpperBound: terminalWidth()}),
		kong.Vars{
			"target":  defaultTarget,
			"version": version,
		},
	)

	if cliConfig.Verbose > maxVerboseLevel {
		kongCtx.Fatalf("up to %d verbose flags is allowed", maxVerboseLevel)
	}

	if cliConfig.File == "" {
		kongCtx.Fatalf("file path must not be empty")
	}

	if cliConfig.List {
		listSteps(os.Stdout, pipeline, terminalWidth())
		os.Exit(0)
	}

	config := patchConfig{
		Path:      cliConfig.File,
		Condition: cliConfig.Condition,
		DryRun:    cliConfig.DryRun,
		Verbose:   cliConfig.Verbose,
	}

	exitCode, err := patch(config, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
	}

	os.Exit(exitCode)
}
