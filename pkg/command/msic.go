// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fspec-project/fspec/modules/term"
)

// diev prints a fatal diagnostic to stderr. colorize mirrors the
// --color flag's resolution, independent of term's own auto-detected
// StderrLevel, so --color=never still suppresses color on a real tty.
func diev(colorize bool, format string, a ...any) {
	var b bytes.Buffer
	_, _ = b.WriteString("fatal: ")
	fmt.Fprintf(&b, format, a...)
	line := term.StderrLevel.Red(b.String())
	if !colorize {
		line = term.StripANSI(line)
	}
	fmt.Fprintln(os.Stderr, line)
}

func slashPath(p string) string {
	return filepath.ToSlash(p)
}

// orDefault returns v unless it is empty, in which case it returns what
// the caller actually resolves to, for diagnostic messages only.
func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
