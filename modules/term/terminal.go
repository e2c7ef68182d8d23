// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package term

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Level is the color depth a terminal supports.
type Level int

const (
	Level0 Level = iota
	Level256
	Level16M
)

var (
	StderrLevel Level
	StdoutLevel Level
)

func simpleAtob(s string, dv bool) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return dv
}

func detectTermColorLevel() Level {
	if simpleAtob(os.Getenv("FSPEC_FORCE_TRUECOLOR"), false) {
		return Level16M
	}
	if simpleAtob(os.Getenv("NO_COLOR"), false) {
		return Level0
	}
	if _, ok := os.LookupEnv("WT_SESSION"); ok {
		return Level16M
	}
	colorTermEnv := os.Getenv("COLORTERM")
	termEnv := os.Getenv("TERM")
	if strings.Contains(termEnv, "24bit") ||
		strings.Contains(termEnv, "truecolor") ||
		strings.Contains(colorTermEnv, "24bit") ||
		strings.Contains(colorTermEnv, "truecolor") {
		return Level16M
	}
	if strings.Contains(termEnv, "256") || strings.Contains(colorTermEnv, "256") {
		return Level256
	}
	return Level0
}

func init() {
	level := detectTermColorLevel()
	if IsTerminal(os.Stderr.Fd()) {
		StderrLevel = level
	}
	if IsTerminal(os.Stdout.Fd()) {
		StdoutLevel = level
	}
}

func GetSize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}
