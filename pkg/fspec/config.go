// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package fspec is the porcelain layer over modules/fswalk: it loads an
// optional .fspec.toml config, applies CLI overrides, and exposes the
// two entry points a command-line tool needs to check a directory tree.
package fspec

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fspec-project/fspec/modules/fspattern"
)

// Config mirrors the on-disk ".fspec.toml" layout documented for the
// [match] and [output] tables.
type Config struct {
	Match  MatchConfig  `toml:"match"`
	Output OutputConfig `toml:"output"`
}

type MatchConfig struct {
	AllowFileOrDirLeaf *bool  `toml:"allow_file_or_dir_leaf"`
	DefaultSeverity    string `toml:"default_severity"`
}

type OutputConfig struct {
	Color string `toml:"color"`
}

// LoadConfig reads a .fspec.toml file. A missing file is not an error;
// it yields the zero Config.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Settings resolves the config (with CLI overrides already folded into
// it by the caller) into the fspattern.MatchSettings the engine needs.
func (c Config) Settings() fspattern.MatchSettings {
	s := fspattern.DefaultMatchSettings()
	if c.Match.AllowFileOrDirLeaf != nil {
		s.AllowFileOrDirLeaf = *c.Match.AllowFileOrDirLeaf
	}
	if c.Match.DefaultSeverity != "" {
		s.DefaultSeverity = fspattern.ParseSeverity(c.Match.DefaultSeverity)
	}
	return s
}
