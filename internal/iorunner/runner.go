// Package iorunner implements the ToolRunner capability on top of
// os/exec. External converters and the quantification engine are
// started through this package only.
package iorunner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/protquant/quantpipe/pkg/lifecycle"
)

type execRunner struct{}

// New returns a ToolRunner backed by os/exec.
func New() lifecycle.ToolRunner {
	return &execRunner{}
}

// Run starts argv and blocks until the process exits. Non-zero exit
// codes come back inside ToolResult; err is reserved for failures to
// launch the process at all. A process killed by a signal reports
// exit code -1, matching os/exec.
func (r *execRunner) Run(
	ctx context.Context,
	argv []string,
) (lifecycle.ToolResult, error) {
	var res lifecycle.ToolResult
	if len(argv) == 0 {
		return res, StartToolError("", errors.New("empty command"))
	}

	slog.Info("Running external tool", "cmd", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	return res, StartToolError(argv[0], err)
}
