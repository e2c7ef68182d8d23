// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fswalk loads a rule file, walks a directory tree against it,
// and produces a Report classifying every entry as allowed, ignored, or
// unaccounted.
package fswalk

import (
	"fmt"

	"github.com/fspec-project/fspec/modules/trace"
)

// IoError wraps a filesystem failure (spec read, directory enumeration,
// entry metadata) with the offending path. Fatal: aborts the check.
type IoError struct {
	Path   string
	Source error
}

func (e *IoError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Source) }
func (e *IoError) Unwrap() error { return e.Source }

// ioError logs the failure's call site via trace.Errorf and returns a
// typed *IoError, so callers can tell it apart with errors.As.
func ioError(path string, source error) *IoError {
	_ = trace.Errorf("%s: %v", path, source)
	return &IoError{Path: path, Source: source}
}

// ParseError is a spec-file syntax error: missing keyword, empty
// pattern, a bad segment, an unclosed placeholder. Fatal: no partial
// Report is ever produced.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// SemanticError covers a missing/non-regular spec file or a component
// regex that failed to compile. Fatal.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string { return e.Message }
