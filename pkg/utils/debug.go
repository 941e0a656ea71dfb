package utils

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// moduleRoot is the absolute source directory of the module, derived from this file's location
var moduleRoot = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	// <root>/pkg/utils/debug.go
	return filepath.Dir(filepath.Dir(filepath.Dir(file))) + "/"
}()

// GetFileAndLoC returns the file path and line of code with skip being the number of stack frames to skip
func GetFileAndLoC(skip int) string {
	_, file, line, _ := runtime.Caller(1 + skip)

	// trim to module relative path
	if moduleRoot != "" {
		file = strings.TrimPrefix(file, moduleRoot)
	}

	return fmt.Sprintf(
		"%s:%d",
		file,
		line,
	)
}
