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
	"fmt"
	"io"
	"strings"

	tsize "github.com/kopoli/go-terminal-size"
	"github.com/mitchellh/go-wordwrap"
)

const (
	defaultWidth = 80
	maxWidth     = 100
	listIndent   = "   "
)

func terminalWidth() int {
	size, err := tsize.GetSize()
	if err != nil || size.Width <= 0 {
		return defaultWidth
	}

	if size.Width > maxWidth {
		return maxWidth
	}

	return size.Width
}

func listSteps(w io.Writer, steps []step, width int) {
	limit := width - len(listIndent)
	if limit < 20 {
		limit = 20
	}

	for i, s := range steps {
		fmt.Fprintf(w, "%d. %s\n", i+1, s.Name)

		wrapped := wordwrap.WrapString(s.Description, uint(limit))
		for _, line := range strings.Split(wrapped, "\n") {
			fmt.Fprintf(w, "%s%s\n", listIndent, line)
		}
	}
}
