//go:build !windows

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package term

import "golang.org/x/term"

// IsTerminal reports whether fd is connected to a terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}
