// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package fspec

import (
	"path/filepath"

	"github.com/fspec-project/fspec/modules/fspattern"
	"github.com/fspec-project/fspec/modules/fswalk"
)

const defaultSpecFileName = ".fspec"
const defaultConfigFileName = ".fspec.toml"

// CheckOptions bundles every CLI-tunable knob a check needs, before it
// is resolved down to fspattern.MatchSettings.
type CheckOptions struct {
	// Root is the directory tree to check. Required.
	Root string
	// SpecPath overrides the default "{Root}/.fspec".
	SpecPath string
	// ConfigPath overrides the default "{Root}/.fspec.toml".
	ConfigPath string
	// LeafOverride, if non-nil, overrides the config's
	// allow_file_or_dir_leaf for a trailing-slash-less pattern.
	LeafOverride *bool
	// SeverityOverride, if non-empty, overrides the config's
	// default_severity.
	SeverityOverride string
	OnVisit          func(relPath string, isDir bool)
}

// resolveSettings loads {Root}/.fspec.toml (or ConfigPath) and layers any CLI
// overrides on top of it, producing the settings CheckTree needs.
func (o CheckOptions) resolveSettings() (fspattern.MatchSettings, error) {
	configPath := o.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(o.Root, defaultConfigFileName)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return fspattern.MatchSettings{}, err
	}
	if o.LeafOverride != nil {
		cfg.Match.AllowFileOrDirLeaf = o.LeafOverride
	}
	if o.SeverityOverride != "" {
		cfg.Match.DefaultSeverity = o.SeverityOverride
	}
	return cfg.Settings(), nil
}

// Check runs a full directory-tree validation and returns the Report.
func Check(opts CheckOptions) (*fswalk.Report, error) {
	settings, err := opts.resolveSettings()
	if err != nil {
		return nil, err
	}
	walkOpts := fswalk.Options{Settings: settings, OnVisit: opts.OnVisit}
	if opts.SpecPath != "" {
		return fswalk.CheckTreeWithSpec(opts.Root, opts.SpecPath, walkOpts)
	}
	return fswalk.CheckTree(opts.Root, walkOpts)
}
