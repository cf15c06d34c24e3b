package lifecycle

import (
	"context"
	"fmt"
)

// ToolResult carries the captured streams and exit code of one external
// tool invocation.
type ToolResult struct {
	// ExitCode is the tool's own exit code; 0 on success.
	ExitCode int
	// Stdout is the tool's captured standard output.
	Stdout string
	// Stderr is the tool's captured standard error.
	Stderr string
}

// ToolRunner executes an external program and captures its streams.
// External converters and the quantification engine are black boxes
// behind this boundary; their logic is never reimplemented.
type ToolRunner interface {
	// Run starts argv[0] with argv[1:] as arguments and blocks until
	// the process exits. A non-zero exit code is returned in ToolResult
	// without error; err is reserved for failures to start or signal
	// termination.
	Run(ctx context.Context, argv []string) (ToolResult, error)
}

// ExitError reports a non-zero exit from an external tool. The embedded
// code is propagated untranslated to the process exit of quantpipe.
type ExitError struct {
	// Tool names the failing program for diagnostics.
	Tool string
	// Code is the tool's exit code.
	Code int
	// Stderr is the tool's captured standard error.
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.Code)
}
