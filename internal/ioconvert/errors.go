package ioconvert

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/errcode"
)

func MissingFileListError(format string) error {
	msg := "Format <em>%s</em> requires --file-list-file " +
		"with run-to-condition annotations"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigMissingFileListError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: missing file list for format %s",
			fn, format),
	}
}

func BadFormatError(format string) error {
	msg := "Unknown input format <em>%s</em>"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigBadFormatError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown input format %s",
			fn, format),
	}
}
