package iorunner

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/errcode"
)

func StartToolError(tool string, err error) error {
	msg := "Cannot start <em>%s</em>"
	vars := []any{tool}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StartToolError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot start tool %s: %w",
			fn, tool, err),
	}
}
