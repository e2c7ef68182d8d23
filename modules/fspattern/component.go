// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fspattern compiles the placeholder AST produced by
// modules/placeholder into anchored per-segment regexes, assembles whole
// patterns from '/'-separated segments, and matches a compiled pattern
// against a path's segment list.
package fspattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fspec-project/fspec/modules/placeholder"
)

// PlaceholderRef pairs a named capture or named one-of with its 1-based
// index into the compiled regex's capturing groups.
type PlaceholderRef struct {
	Name       string
	GroupIndex int
}

// CompiledComponent is one path component compiled to an anchored regex,
// plus the table of named placeholders it carries.
type CompiledComponent struct {
	AST          *placeholder.Component
	Source       string
	Regex        *regexp.Regexp
	Placeholders []PlaceholderRef
}

func compileComponent(source string, c *placeholder.Component) (*CompiledComponent, error) {
	var sb strings.Builder
	sb.WriteByte('^')
	groupIdx := 0
	var refs []PlaceholderRef
	for _, part := range c.Parts {
		switch p := part.(type) {
		case placeholder.Literal:
			sb.WriteString(regexp.QuoteMeta(p.Value))
		case placeholder.Star:
			sb.WriteString(".*")
		case placeholder.Placeholder:
			switch body := p.Body.(type) {
			case placeholder.Capture:
				groupIdx++
				sb.WriteByte('(')
				sb.WriteString(limiterFragment(body.Limiter))
				sb.WriteByte(')')
				if body.Name != "" {
					refs = append(refs, PlaceholderRef{Name: body.Name, GroupIndex: groupIdx})
				}
			case placeholder.OneOf:
				named := body.Name != nil
				if named {
					groupIdx++
					sb.WriteByte('(')
				} else {
					sb.WriteString("(?:")
				}
				for i, ch := range body.Choices {
					if i > 0 {
						sb.WriteByte('|')
					}
					sb.WriteString(regexp.QuoteMeta(ch.Value))
				}
				sb.WriteByte(')')
				if named {
					refs = append(refs, PlaceholderRef{Name: *body.Name, GroupIndex: groupIdx})
				}
			default:
				return nil, fmt.Errorf("compile component %q: unknown placeholder body %T", source, body)
			}
		default:
			return nil, fmt.Errorf("compile component %q: unknown part %T", source, p)
		}
	}
	sb.WriteByte('$')
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("compile component %q: %w", source, err)
	}
	return &CompiledComponent{AST: c, Source: source, Regex: re, Placeholders: refs}, nil
}

// MatchSegment tries the component's regex against a single path segment,
// returning the captured named-placeholder values on success. A name can
// map to more than one value when the same placeholder name appears more
// than once within this single component (e.g. "{x}_{x}"); the caller is
// responsible for checking all of them against each other.
func (c *CompiledComponent) MatchSegment(segment string) (map[string][]string, bool) {
	m := c.Regex.FindStringSubmatch(segment)
	if m == nil {
		return nil, false
	}
	captured := make(map[string][]string, len(c.Placeholders))
	for _, ref := range c.Placeholders {
		if ref.GroupIndex < len(m) {
			captured[ref.Name] = append(captured[ref.Name], m[ref.GroupIndex])
		}
	}
	return captured, true
}
