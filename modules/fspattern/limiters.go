// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fspattern

import (
	"fmt"
	"strconv"

	"github.com/fspec-project/fspec/modules/placeholder"
)

// fallbackFragment is used whenever a limiter name is unknown, or its
// arguments don't typecheck: older specs stay loadable under newer
// engines rather than failing to parse.
const fallbackFragment = ".+"

// limiterFragment renders a parsed Limiter to its regex fragment, per the
// Level 1 limiter vocabulary.
func limiterFragment(lim *placeholder.Limiter) string {
	if lim == nil {
		return fallbackFragment
	}
	switch lim.Name {
	case "snake_case":
		return `[a-z0-9]+(?:_[a-z0-9]+)*`
	case "kebab_case":
		return `[a-z0-9]+(?:-[a-z0-9]+)*`
	case "pascal_case":
		return `[A-Z][a-z0-9]*(?:[A-Z][a-z0-9]*)*`
	case "upper_case":
		return `[A-Z0-9]+`
	case "lower_case":
		return `[a-z0-9]+`
	case "letters":
		return `\p{L}+`
	case "numbers":
		return `\p{Nd}+`
	case "alnum":
		return `(?:\p{L}|\p{Nd})+`
	case "int":
		return intFragment(lim.Args)
	case "re":
		return reFragment(lim.Args)
	default:
		return fallbackFragment
	}
}

func intFragment(args []placeholder.Arg) string {
	if len(args) != 1 || args[0].Kind != placeholder.ArgNumber {
		return fallbackFragment
	}
	n, err := strconv.Atoi(args[0].Text)
	if err != nil || n <= 0 {
		return fallbackFragment
	}
	return fmt.Sprintf(`[0-9]{%d}`, n)
}

func reFragment(args []placeholder.Arg) string {
	if len(args) != 1 || args[0].Kind != placeholder.ArgString {
		return fallbackFragment
	}
	return "(?:" + args[0].Text + ")"
}
