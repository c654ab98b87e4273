// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	harness := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	err := harness.root().Execute(args)
	if err == nil {
		return 0
	}

	// Commands that print their own output return an ExitError with
	// the desired code. Don't print a redundant "error:" line for those.
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}
