package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigMissingFileListError
	ConfigBadFormatError

	// External tool errors
	StartToolError

	// Annotation cache errors
	CacheOpenError
	CacheQueryError
)
