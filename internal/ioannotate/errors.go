package ioannotate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/protquant/quantpipe/pkg/errcode"
)

func CacheOpenError(path string, err error) error {
	msg := "Cannot open gene-name cache <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open cache %s: %w",
			fn, path, err),
	}
}

func CacheQueryError(path string, err error) error {
	msg := "Gene-name cache query failed for <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cache query failed %s: %w",
			fn, path, err),
	}
}
