// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command holds the kong command structs that make up fspec's
// single-command CLI surface.
package command

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/fspec-project/fspec/modules/trace"
	"github.com/fspec-project/fspec/pkg/version"
)

// Globals are the flags shared by every command (today, just Check).
type Globals struct {
	Quiet   bool        `short:"q" name:"quiet" help:"Suppress the progress indicator and summary line"`
	Verbose int         `short:"v" name:"verbose" type:"counter" help:"Increase logging verbosity; repeat for more (-v, -vv)"`
	Version VersionFlag `short:"V" name:"version" help:"Show version number and quit"`

	dbg trace.Debuger
}

// Debuger lazily builds the -v diagnostic printer for this invocation.
// Unlike Verbose's tracker.StepNext (gated on -vv and used for phase
// timing), this is a single verbosity level lower and carries
// free-form progress notes.
func (g *Globals) Debuger() trace.Debuger {
	if g.dbg == nil {
		g.dbg = trace.NewDebuger(g.Verbose >= 1)
	}
	return g.dbg
}

type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version.GetVersionString())
	app.Exit(0)
	return nil
}

var (
	ErrFlagsIncompatible = errors.New("flags incompatible")
)

// ErrExitCode carries a specific process exit code out of a command's
// Run method so main can set os.Exit's argument without re-inspecting
// the error.
type ErrExitCode struct {
	ExitCode int
}

func (e *ErrExitCode) Error() string { return fmt.Sprintf("exit code %d", e.ExitCode) }
