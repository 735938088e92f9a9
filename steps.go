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
	"regexp"
	"strings"
)

const (
	declarationIndent  = "      "
	declarationWindow  = 1000
	errorMessageAnchor = "let errorMessage = 'Failed to fetch property details';"
	statusDeclaration  = "let responseStatus: number | undefined;"
)

type step struct {
	Name        string
	Description string
	Apply       func(text string) (string, int)
}

type stepReport struct {
	Name  string
	Count int
}

type patchResult struct {
	Text    string
	Reports []stepReport
	Changed bool
}

// The order matters: the declaration check runs on text already rewritten
// by the first two steps.
var pipeline = []step{
	{
		Name:        "response-guard",
		Description: "Replace the untyped 'error.response' guard with a typed 'response' in error check that records the response status.",
		Apply: replacePattern(
			literalPattern(`if (error.response) {
        const status = error.response.status;
        const message = error.response.data?.message || error.response.data?.error || errorMessage;`),
			`if (error && typeof error === 'object' && 'response' in error) {
        const axiosError = error as { response?: { status?: number; data?: { message?: string; error?: string } } };
        const status = axiosError.response?.status;
        responseStatus = status;
        const message = axiosError.response?.data?.message || axiosError.response?.data?.error || errorMessage;`,
		),
	},
	{
		Name:        "redirect-guard",
		Description: "Make the redirect guard test the recorded 'responseStatus' instead of reading 'error.response' again.",
		Apply: replacePattern(
			literalPattern("if (error.response?.status === 404 || error.response?.status === 403) {"),
			"if (responseStatus === 404 || responseStatus === 403) {",
		),
	},
	{
		Name:        "status-declaration",
		Description: "Declare 'responseStatus' after the 'errorMessage' declaration unless it is already declared.",
		Apply:       insertAfter(errorMessageAnchor, statusDeclaration, declarationIndent, declarationWindow),
	},
	{
		Name:        "request-guard",
		Description: "Remove the redundant parentheses around the 'request' in error condition.",
		Apply: replaceLiteral(
			"} else if ((error && typeof error === 'object' && 'request' in error)) {",
			"} else if (error && typeof error === 'object' && 'request' in error) {",
		),
	},
	{
		Name:        "error-guard",
		Description: "Only read 'error.message' in the final branch when the error is an Error instance.",
		Apply: replaceLiteral(
			"} else {\n        errorMessage = error.message || errorMessage;\n      }",
			"} else if (error instanceof Error) {\n        errorMessage = error.message || errorMessage;\n      }",
		),
	},
}

// literalPattern matches s with every character taken literally, except that
// each run of whitespace in s matches any non-empty run of whitespace.
func literalPattern(s string) *regexp.Regexp {
	fields := strings.Fields(s)
	for i, field := range fields {
		fields[i] = regexp.QuoteMeta(field)
	}

	return regexp.MustCompile(strings.Join(fields, `\s+`))
}

func replacePattern(re *regexp.Regexp, replacement string) func(string) (string, int) {
	return func(text string) (string, int) {
		count := len(re.FindAllStringIndex(text, -1))
		if count == 0 {
			return text, 0
		}

		return re.ReplaceAllLiteralString(text, replacement), count
	}
}

func replaceLiteral(old, replacement string) func(string) (string, int) {
	return func(text string) (string, int) {
		count := strings.Count(text, old)
		if count == 0 {
			return text, 0
		}

		return strings.ReplaceAll(text, old, replacement), count
	}
}

// insertAfter puts line on its own line after the first occurrence of anchor
// unless line already appears within the first window runes of the text or
// right after the anchor.
func insertAfter(anchor, line, indent string, window int) func(string) (string, int) {
	present := regexp.MustCompile(regexp.QuoteMeta(anchor) + `\s*` + regexp.QuoteMeta(line))

	return func(text string) (string, int) {
		if strings.Contains(runePrefix(text, window), line) {
			return text, 0
		}

		if !strings.Contains(text, anchor) || present.MatchString(text) {
			return text, 0
		}

		return strings.Replace(text, anchor, anchor+"\n"+indent+line, 1), 1
	}
}

func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

func applySteps(text string, steps []step) patchResult {
	result := patchResult{
		Text:    text,
		Reports: make([]stepReport, 0, len(steps)),
	}

	for _, s := range steps {
		var count int
		result.Text, count = s.Apply(result.Text)
		result.Reports = append(result.Reports, stepReport{Name: s.Name, Count: count})
	}

	result.Changed = result.Text != text

	return result
}
