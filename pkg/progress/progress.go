// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package progress renders a live indicator of a directory-tree check's
// progress, for the CLI's --progress flag.
package progress

import (
	"fmt"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/fspec-project/fspec/modules/term"
)

func filler() string {
	return term.StderrLevel.Blue("#")
}

// WalkProgress is an indeterminate counter of entries visited while
// walking a tree: the total entry count isn't known until the walk
// finishes, so it renders a moving bar plus a running count instead of
// a percentage.
type WalkProgress struct {
	p     *mpb.Progress
	bar   *mpb.Bar
	quiet bool
}

// NewWalkProgress starts rendering on stderr. When quiet is true every
// method becomes a no-op, so callers can construct one unconditionally.
func NewWalkProgress(description string, quiet bool) *WalkProgress {
	if quiet {
		return &WalkProgress{quiet: true}
	}
	p := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithAutoRefresh())
	bar := p.New(-1,
		mpb.BarStyle().Filler(filler()).Padding(" "),
		mpb.PrependDecorators(
			decor.Name(description, decor.WC{W: len(description) + 1, C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Any(func(s decor.Statistics) string {
				return fmt.Sprintf("%d entries", s.Current)
			}),
		),
	)
	return &WalkProgress{p: p, bar: bar}
}

// OnVisit matches fswalk.Options.OnVisit's signature: hand it directly
// to fswalk.Options or pkg/fspec.CheckOptions.
func (w *WalkProgress) OnVisit(relPath string, isDir bool) {
	if w.quiet {
		return
	}
	w.bar.Increment()
}

// Done finalizes the bar and waits for the last frame to render.
func (w *WalkProgress) Done() {
	if w.quiet {
		return
	}
	w.bar.SetTotal(-1, true)
	w.p.Wait()
}
