// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fswalk

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fspec-project/fspec/modules/fspattern"
)

// Rule is one compiled line of a spec file. Rules are kept in file order;
// their slice index is what the walker calls a "rule index".
type Rule struct {
	LineNumber int
	Kind       fspattern.RuleKind
	Pattern    *fspattern.Pattern
	Raw        string
}

// ParseRules reads a spec file's contents into compiled Rules. Blank
// lines and lines beginning with '#' (after leading whitespace) are
// comments. A line beginning with "allow" or "ignore" followed by
// whitespace takes that kind; any other non-comment line is treated as
// an implicit allow rule for compatibility with tools like `find`.
func ParseRules(r io.Reader, settings fspattern.MatchSettings) ([]Rule, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var rules []Rule
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kind, patternText, err := splitRuleLine(trimmed, lineNo)
		if err != nil {
			return nil, err
		}
		pat, err := fspattern.ParsePattern(patternText, settings)
		if err != nil {
			if pe, ok := err.(*fspattern.Error); ok {
				return nil, &ParseError{Line: lineNo, Column: pe.Column, Message: pe.Message}
			}
			return nil, &ParseError{Line: lineNo, Column: 1, Message: err.Error()}
		}
		rules = append(rules, Rule{LineNumber: lineNo, Kind: kind, Pattern: pat, Raw: trimmed})
	}
	if err := scanner.Err(); err != nil {
		return nil, ioError("<spec>", err)
	}
	return rules, nil
}

func splitRuleLine(trimmed string, lineNo int) (fspattern.RuleKind, string, error) {
	if kind, pattern, matched, err := tryKeyword(trimmed, "allow", fspattern.KindAllow, lineNo); matched {
		return kind, pattern, err
	}
	if kind, pattern, matched, err := tryKeyword(trimmed, "ignore", fspattern.KindIgnore, lineNo); matched {
		return kind, pattern, err
	}
	return fspattern.KindAllow, trimmed, nil
}

// tryKeyword reports whether line begins with keyword as a whole word
// (exactly, or followed by whitespace). When it does, pattern is
// whatever whitespace-trimmed text follows; an empty result is a parse
// error rather than falling back to compatibility mode, since the author
// clearly meant the keyword.
func tryKeyword(line, keyword string, kind fspattern.RuleKind, lineNo int) (fspattern.RuleKind, string, bool, error) {
	if !strings.HasPrefix(line, keyword) {
		return 0, "", false, nil
	}
	rest := line[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false, nil
	}
	pattern := strings.TrimSpace(rest)
	if pattern == "" {
		return 0, "", true, &ParseError{Line: lineNo, Column: len(keyword) + 1, Message: fmt.Sprintf("%q requires a non-empty pattern", keyword)}
	}
	return kind, pattern, true, nil
}
