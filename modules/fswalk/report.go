// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fswalk

import (
	"runtime"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/fspec-project/fspec/modules/fspattern"
)

// Status is the classification of one path in a Report.
type Status int

const (
	Allowed Status = iota
	Ignored
	Unaccounted
)

func (s Status) String() string {
	switch s {
	case Allowed:
		return "allowed"
	case Ignored:
		return "ignored"
	default:
		return "unaccounted"
	}
}

// DiagnosticCode names the kind of condition a Diagnostic reports.
type DiagnosticCode string

// CodeUnaccounted is raised once per Unaccounted path.
const CodeUnaccounted DiagnosticCode = "unaccounted"

// Diagnostic is one reportable condition, beyond plain classification,
// the walker recorded during a check.
type Diagnostic struct {
	Code      DiagnosticCode
	Severity  fspattern.Severity
	Path      string
	Message   string
	RuleLines []int
}

// Report is the outcome of one check_tree call: every discovered path
// mapped to a Status, in canonical sorted order, plus the diagnostics
// raised along the way.
type Report struct {
	statuses    *treemap.Map
	diagnostics []Diagnostic
}

func newReport() *Report {
	return &Report{statuses: treemap.NewWithStringComparator()}
}

func caseInsensitiveHost() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}

// canonKey implements the canonicalization rule of spec §3: trim,
// backslash to forward slash, strip repeated leading "./" or "/", strip
// a trailing "/" except for the single-character root, lowercase on
// hosts with case-insensitive filesystems.
func canonKey(p string) string {
	s := strings.TrimSpace(p)
	s = strings.ReplaceAll(s, "\\", "/")
	for {
		if after, ok := strings.CutPrefix(s, "./"); ok {
			s = after
			continue
		}
		if after, ok := strings.CutPrefix(s, "/"); ok {
			s = after
			continue
		}
		break
	}
	for len(s) > 1 && strings.HasSuffix(s, "/") {
		s = s[:len(s)-1]
	}
	if caseInsensitiveHost() {
		s = strings.ToLower(s)
	}
	return s
}

func (r *Report) setStatus(path string, status Status) {
	r.statuses.Put(canonKey(path), status)
}

// StatusOf reports the Status of path, applying the same canonicalization
// as the entries stored during the walk.
func (r *Report) StatusOf(path string) (Status, bool) {
	v, ok := r.statuses.Get(canonKey(path))
	if !ok {
		return 0, false
	}
	return v.(Status), true
}

func (r *Report) IsAllowed(path string) bool {
	s, ok := r.StatusOf(path)
	return ok && s == Allowed
}

func (r *Report) IsIgnored(path string) bool {
	s, ok := r.StatusOf(path)
	return ok && s == Ignored
}

func (r *Report) IsUnaccounted(path string) bool {
	s, ok := r.StatusOf(path)
	return ok && s == Unaccounted
}

// UnaccountedPaths returns every Unaccounted path in canonical sorted
// order.
func (r *Report) UnaccountedPaths() []string {
	var out []string
	r.statuses.Each(func(key, value any) {
		if value.(Status) == Unaccounted {
			out = append(out, key.(string))
		}
	})
	return out
}

// Paths returns every classified path in canonical sorted order.
func (r *Report) Paths() []string {
	keys := r.statuses.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	return out
}

// Diagnostics returns every diagnostic raised during the walk, sorted by
// path.
func (r *Report) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), r.diagnostics...)
}

func (r *Report) addDiagnostic(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}
