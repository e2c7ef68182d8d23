// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/fspec-project/fspec/modules/trace"
	"github.com/fspec-project/fspec/pkg/command"
	"github.com/fspec-project/fspec/pkg/version"
)

type App struct {
	command.Globals
	command.Check `cmd:"" default:"1"`
	Debug         bool `name:"debug" help:"Enable debug mode; analyze timing"`
}

type Tracer struct {
	closeFn func()
}

func NewTracer(debugMode bool) *Tracer {
	d := &Tracer{}
	if !debugMode {
		return d
	}
	pprofName := filepath.Join(os.TempDir(), fmt.Sprintf("fspec-%d.pprof", os.Getpid()))
	fd, err := os.Create(pprofName)
	if err != nil {
		return d
	}
	if err = pprof.StartCPUProfile(fd); err != nil {
		_ = fd.Close()
		return d
	}
	d.closeFn = func() {
		pprof.StopCPUProfile()
		_ = fd.Close()
		fmt.Fprintf(os.Stderr, "Task operation completed\ngo tool pprof -http=\":8080\" %s\n", pprofName)
	}
	return d
}

func (d *Tracer) Close() {
	if d.closeFn != nil {
		d.closeFn()
	}
}

func configureLogging(verbose int) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: verbose < 2})
	switch {
	case verbose >= 2:
		logrus.SetLevel(logrus.DebugLevel)
	case verbose == 1:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("fspec"),
		kong.Description("fspec - validate a directory tree against a declarative allow/ignore spec"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.GetVersionString(),
		},
	)
	configureLogging(app.Verbose)

	tracker := trace.NewTracker(app.Verbose >= 2)
	t := NewTracer(app.Debug)
	err := ctx.Run(&app.Globals, tracker)
	t.Close()
	if err == nil {
		return
	}
	if e, ok := err.(*command.ErrExitCode); ok {
		os.Exit(e.ExitCode)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}
