// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError is one CUE error located in a file.
type ValidationError struct {
	// FilePath is the document the error was found in.
	FilePath string
	// Path is the JSON-style path of the field, e.g. "vectors[3].bytes".
	// Empty for errors not tied to a field, such as syntax errors.
	Path string
	// Message is the CUE error text without the path prefix.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// FormatError converts err into *ValidationError values, one per CUE error,
// joined with errors.Join when there is more than one. Errors that do not
// come from CUE are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var ce cueerrors.Error
	if !errors.As(err, &ce) {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	list := cueerrors.Errors(err)

	out := make([]error, 0, len(list))
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		format, args := e.Msg()
		msg := strings.TrimSpace(fmt.Sprintf(format, args...))
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		out = append(out, &ValidationError{FilePath: filePath, Path: path, Message: msg})
	}
	if len(out) == 1 {
		return out[0]
	}
	return errors.Join(out...)
}

// formatPath renders CUE path elements as "a.b[2].c". Numeric elements are
// list indices. A leading definition such as "#Vector" is dropped.
func formatPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
