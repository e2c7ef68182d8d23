// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fswalk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fspec-project/fspec/modules/fspattern"
)

// InheritedKind is the subtree-ignore state carried down a directory walk.
type InheritedKind int

const (
	InheritNone InheritedKind = iota
	InheritSubtreeIgnored
)

// Inherited records whether the current directory's ancestor chain set an
// ignored subtree, and which rule did it (for diagnostics).
type Inherited struct {
	Kind    InheritedKind
	RuleIdx int
}

type verdictKind int

const (
	vAllow verdictKind = iota
	vIgnore
	vIgnoredByInheritance
	vUnaccounted
)

type verdict struct {
	kind    verdictKind
	ruleIdx int
}

// classify implements spec §4.5's per-entry decision: scan rules in
// reverse (last-wins), then fall back to inheritance, then Unaccounted.
func classify(rules []Rule, liveIdxs []int, segments []string, kind fspattern.PathKind, inherited Inherited) verdict {
	for i := len(liveIdxs) - 1; i >= 0; i-- {
		idx := liveIdxs[i]
		rule := rules[idx]
		if _, ok := rule.Pattern.Matches(segments, kind); ok {
			if rule.Kind == fspattern.KindAllow {
				return verdict{kind: vAllow, ruleIdx: idx}
			}
			return verdict{kind: vIgnore, ruleIdx: idx}
		}
	}
	if inherited.Kind == InheritSubtreeIgnored {
		return verdict{kind: vIgnoredByInheritance, ruleIdx: inherited.RuleIdx}
	}
	return verdict{kind: vUnaccounted}
}

// walkOutput accumulates the six classification sets spec §4.5 names,
// keyed by '/'-joined relative path from root.
type walkOutput struct {
	allowedFiles     map[string]bool
	allowedDirs      map[string]bool
	ignoredFiles     map[string]bool
	ignoredDirs      map[string]bool
	unaccountedFiles map[string]bool
	unaccountedDirs  map[string]bool
}

func newWalkOutput() *walkOutput {
	return &walkOutput{
		allowedFiles:     map[string]bool{},
		allowedDirs:      map[string]bool{},
		ignoredFiles:     map[string]bool{},
		ignoredDirs:      map[string]bool{},
		unaccountedFiles: map[string]bool{},
		unaccountedDirs:  map[string]bool{},
	}
}

func joinRel(segments []string) string { return strings.Join(segments, "/") }

// markAllowedWithAncestors implements allow_with_ancestors: marking p
// Allowed also promotes every ancestor directory up to (not including)
// the root, removing each from the Ignored/Unaccounted sets.
func (w *walkOutput) markAllowedWithAncestors(segments []string, isDir bool) {
	key := joinRel(segments)
	if isDir {
		w.allowedDirs[key] = true
		delete(w.ignoredDirs, key)
		delete(w.unaccountedDirs, key)
	} else {
		w.allowedFiles[key] = true
		delete(w.ignoredFiles, key)
		delete(w.unaccountedFiles, key)
	}
	for i := len(segments) - 1; i > 0; i-- {
		anc := joinRel(segments[:i])
		w.allowedDirs[anc] = true
		delete(w.ignoredDirs, anc)
		delete(w.unaccountedDirs, anc)
	}
}

func (w *walkOutput) markIgnored(segments []string, isDir bool) {
	key := joinRel(segments)
	if isDir {
		w.ignoredDirs[key] = true
	} else {
		w.ignoredFiles[key] = true
	}
}

// markUnaccounted is a no-op if the path is already Allowed or Ignored.
func (w *walkOutput) markUnaccounted(segments []string, isDir bool) {
	key := joinRel(segments)
	if isDir {
		if w.allowedDirs[key] || w.ignoredDirs[key] {
			return
		}
		w.unaccountedDirs[key] = true
	} else {
		if w.allowedFiles[key] || w.ignoredFiles[key] {
			return
		}
		w.unaccountedFiles[key] = true
	}
}

// classifyDirEntry reports whether d is a directory, and whether it
// should be silently skipped (symlinks, sockets, FIFOs, devices).
func classifyDirEntry(d os.DirEntry) (isDir, skip bool) {
	typ := d.Type()
	switch {
	case typ&fs.ModeSymlink != 0:
		return false, true
	case d.IsDir():
		return true, false
	case typ.IsRegular():
		return false, false
	default:
		return false, true
	}
}

func allLiveIdxs(n int) []int {
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	return idxs
}

// walker holds the immutable inputs to one tree walk and accumulates
// output as it recurses.
type walker struct {
	root     string
	specPath string
	rules    []Rule
	liveIdxs []int
	out      *walkOutput
	onVisit  func(relPath string, isDir bool)
}

func (w *walker) run() error {
	return w.walkDir(nil, Inherited{})
}

func (w *walker) walkDir(rel []string, inherited Inherited) error {
	dirOSPath := filepath.Join(append([]string{w.root}, rel...)...)
	entries, err := os.ReadDir(dirOSPath)
	if err != nil {
		return ioError(dirOSPath, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, d := range entries {
		name := d.Name()
		childOSPath := filepath.Join(dirOSPath, name)
		if len(rel) == 0 && childOSPath == w.specPath {
			continue
		}
		isDir, skip := classifyDirEntry(d)
		if skip {
			continue
		}
		childRel := make([]string, len(rel)+1)
		copy(childRel, rel)
		childRel[len(rel)] = name

		if w.onVisit != nil {
			w.onVisit(joinRel(childRel), isDir)
		}

		kind := fspattern.PathFile
		if isDir {
			kind = fspattern.PathDir
		}
		v := classify(w.rules, w.liveIdxs, childRel, kind, inherited)

		switch v.kind {
		case vAllow:
			w.out.markAllowedWithAncestors(childRel, isDir)
			if isDir {
				if err := w.walkDir(childRel, inherited); err != nil {
					return err
				}
			}
		case vIgnore:
			w.out.markIgnored(childRel, isDir)
			if isDir {
				childInherited := Inherited{Kind: InheritSubtreeIgnored, RuleIdx: v.ruleIdx}
				if err := w.walkDir(childRel, childInherited); err != nil {
					return err
				}
			}
		case vIgnoredByInheritance:
			w.out.markIgnored(childRel, isDir)
			if isDir {
				if err := w.walkDir(childRel, inherited); err != nil {
					return err
				}
			}
		default:
			w.out.markUnaccounted(childRel, isDir)
			if isDir {
				if err := w.walkDir(childRel, inherited); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Options configures a tree check beyond the pattern-matching settings.
type Options struct {
	Settings fspattern.MatchSettings
	// OnVisit, if set, is called once per visited entry (depth-first,
	// pre-order), for a CLI progress indicator.
	OnVisit func(relPath string, isDir bool)
}

// CheckTree reads "{root}/.fspec" and classifies every entry under root.
func CheckTree(root string, opts Options) (*Report, error) {
	return CheckTreeWithSpec(root, filepath.Join(root, ".fspec"), opts)
}

// CheckTreeWithSpec reads specPath instead of the default "{root}/.fspec"
// and classifies every entry under root.
func CheckTreeWithSpec(root, specPath string, opts Options) (*Report, error) {
	info, err := os.Stat(specPath)
	if err != nil {
		return nil, &SemanticError{Message: fmt.Sprintf("spec file %s: %v", specPath, err)}
	}
	if !info.Mode().IsRegular() {
		return nil, &SemanticError{Message: fmt.Sprintf("spec file %s is not a regular file", specPath)}
	}
	f, err := os.Open(specPath)
	if err != nil {
		return nil, ioError(specPath, err)
	}
	defer f.Close()

	rules, err := ParseRules(f, opts.Settings)
	if err != nil {
		return nil, err
	}

	out := newWalkOutput()
	w := &walker{
		root:     root,
		specPath: specPath,
		rules:    rules,
		liveIdxs: allLiveIdxs(len(rules)),
		out:      out,
		onVisit:  opts.OnVisit,
	}
	if err := w.run(); err != nil {
		return nil, err
	}
	return assembleReport(out, opts.Settings.DefaultSeverity), nil
}

func assembleReport(out *walkOutput, defaultSeverity fspattern.Severity) *Report {
	r := newReport()
	for p := range out.allowedFiles {
		r.setStatus(p, Allowed)
	}
	for p := range out.allowedDirs {
		r.setStatus(p, Allowed)
	}
	for p := range out.ignoredFiles {
		r.setStatus(p, Ignored)
	}
	for p := range out.ignoredDirs {
		r.setStatus(p, Ignored)
	}
	for p := range out.unaccountedFiles {
		r.setStatus(p, Unaccounted)
		r.addDiagnostic(unaccountedDiagnostic(p, defaultSeverity))
	}
	for p := range out.unaccountedDirs {
		r.setStatus(p, Unaccounted)
		r.addDiagnostic(unaccountedDiagnostic(p, defaultSeverity))
	}
	sort.Slice(r.diagnostics, func(i, j int) bool { return r.diagnostics[i].Path < r.diagnostics[j].Path })
	return r
}

func unaccountedDiagnostic(path string, severity fspattern.Severity) Diagnostic {
	return Diagnostic{
		Code:     CodeUnaccounted,
		Severity: severity,
		Path:     canonKey(path),
		Message:  fmt.Sprintf("%q is not matched by any allow or ignore rule", path),
	}
}
