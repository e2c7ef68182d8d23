// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/mgutz/ansi"
	"golang.org/x/term"

	"github.com/fspec-project/fspec/modules/fspattern"
	"github.com/fspec-project/fspec/modules/fswalk"
	fsterm "github.com/fspec-project/fspec/modules/term"
	"github.com/fspec-project/fspec/modules/trace"
	"github.com/fspec-project/fspec/pkg/fspec"
	"github.com/fspec-project/fspec/pkg/progress"
)

// Check is fspec's one real command: classify every entry under a
// directory against its spec file and report the result.
type Check struct {
	Path     string `arg:"" name:"path" optional:"" help:"Directory to check (default: the current directory)"`
	Root     string `name:"root" help:"Directory tree to check; overrides PATH"`
	Spec     string `name:"spec" help:"Spec file to read (default: \"<root>/.fspec\")"`
	Config   string `name:"config" help:"Config file to read (default: \"<root>/.fspec.toml\")"`
	Leaf     string `name:"leaf" enum:"strict,loose," default:"" help:"strict requires a trailing slash to match a directory; loose (default) lets a leaf pattern match either"`
	Severity string `name:"severity" enum:"info,warning,error," default:"" help:"Severity assigned to Unaccounted paths"`
	Format   string `name:"format" enum:"human,json" default:"human" help:"Report rendering"`
	Color    string `name:"color" enum:"auto,always,never" default:"auto" help:"Colorize human output"`
	Progress bool   `name:"progress" help:"Show a live progress indicator while walking"`
}

func (c *Check) resolvedRoot() (string, error) {
	root := c.Root
	if root == "" {
		root = c.Path
	}
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return abs, nil
}

func (c *Check) leafOverride() *bool {
	switch c.Leaf {
	case "strict":
		v := false
		return &v
	case "loose":
		v := true
		return &v
	default:
		return nil
	}
}

func (c *Check) Run(g *Globals, tracker *trace.Tracker) error {
	root, err := c.resolvedRoot()
	if err != nil {
		diev(c.useColor(), "%v", err)
		return &ErrExitCode{ExitCode: 2}
	}
	tracker.StepNext("resolved root %s", root)

	quiet := g.Quiet || c.Format == "json"
	showProgress := c.Progress && !quiet && isatty.IsTerminal(os.Stderr.Fd())
	g.Debuger().DbgPrint("spec %s, config %s, leaf %s, severity %s", orDefault(c.Spec, ".fspec"), orDefault(c.Config, ".fspec.toml"), orDefault(c.Leaf, "loose"), orDefault(c.Severity, "default"))
	bar := progress.NewWalkProgress(fmt.Sprintf("checking %s", slashPath(root)), !showProgress)

	report, err := fspec.Check(fspec.CheckOptions{
		Root:             root,
		SpecPath:         c.Spec,
		ConfigPath:       c.Config,
		LeafOverride:     c.leafOverride(),
		SeverityOverride: c.Severity,
		OnVisit:          bar.OnVisit,
	})
	bar.Done()
	if err != nil {
		diev(c.useColor(), "%v", err)
		return &ErrExitCode{ExitCode: 2}
	}
	tracker.StepNext("walked %s", root)

	if c.Format == "json" {
		if err := renderJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		c.renderHuman(os.Stdout, report, quiet)
	}
	tracker.StepNext("rendered report")

	if len(report.UnaccountedPaths()) > 0 {
		return &ErrExitCode{ExitCode: 1}
	}
	return nil
}

func (c *Check) useColor() bool {
	switch c.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}

func severityColor(sev fspattern.Severity, colorize bool) func(string) string {
	if !colorize {
		return func(s string) string { return s }
	}
	style := "yellow"
	switch sev {
	case fspattern.SeverityError:
		style = "red+b"
	case fspattern.SeverityInfo:
		style = "cyan"
	}
	return func(s string) string { return ansi.Color(s, style) }
}

func (c *Check) renderHuman(w *os.File, report *fswalk.Report, quiet bool) {
	colorize := c.useColor()
	diags := report.Diagnostics()
	sort.Slice(diags, func(i, j int) bool { return diags[i].Path < diags[j].Path })

	width := 0
	if wc, _, err := term.GetSize(int(w.Fd())); err == nil && wc > 0 {
		width = wc
	}
	for _, d := range diags {
		paint := severityColor(d.Severity, colorize)
		label := paint(fmt.Sprintf("%-7s", d.Severity.String()))
		line := fmt.Sprintf("%s %s: %s", label, d.Path, d.Message)
		if width > 0 && runewidth.StringWidth(line) > width {
			line = runewidth.Truncate(line, width, "...")
		}
		fmt.Fprintln(w, line)
	}

	if quiet {
		return
	}
	fmt.Fprintln(w, c.summaryLine(report, colorize))
}

// summaryLine reports the unaccounted/total entry counts, colored green
// when the tree is clean and yellow otherwise. colorize mirrors the
// --color flag's resolution, independent of term's own auto-detected
// StdoutLevel, so --color=never still suppresses color on a real tty.
func (c *Check) summaryLine(report *fswalk.Report, colorize bool) string {
	total := len(report.Paths())
	unaccounted := len(report.UnaccountedPaths())
	line := fmt.Sprintf("%s unaccounted of %s entries", humanize.Comma(int64(unaccounted)), humanize.Comma(int64(total)))
	if unaccounted > 0 {
		line = fsterm.StdoutLevel.Yellow(line)
	} else {
		line = fsterm.StdoutLevel.Green(line)
	}
	if !colorize {
		line = fsterm.StripANSI(line)
	}
	return line
}

type jsonReport struct {
	Entries     map[string]string `json:"entries"`
	Diagnostics []jsonDiagnostic  `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

func renderJSON(w *os.File, report *fswalk.Report) error {
	out := jsonReport{Entries: map[string]string{}}
	for _, p := range report.Paths() {
		status, _ := report.StatusOf(p)
		out.Entries[p] = status.String()
	}
	for _, d := range report.Diagnostics() {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Code:     string(d.Code),
			Severity: d.Severity.String(),
			Path:     d.Path,
			Message:  d.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
