package fspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDefaultsToFsSpecInRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec"), []byte("allow /Cargo.toml\n"), 0o644))

	report, err := Check(CheckOptions{Root: root})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("Cargo.toml"))
}

func TestCheckAppliesConfigDefaultSeverity(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec"), []byte("allow /Cargo.toml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec.toml"), []byte("[match]\ndefault_severity = \"error\"\n"), 0o644))

	report, err := Check(CheckOptions{Root: root})
	require.NoError(t, err)
	require.True(t, report.IsUnaccounted("stray.txt"))
	// .fspec.toml is an ordinary entry under root, so it is unaccounted too.
	diags := report.Diagnostics()
	require.Len(t, diags, 2)
	require.Equal(t, "error", diags[0].Severity.String())
}

func TestCheckSeverityOverrideWinsOverConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec"), []byte("allow /Cargo.toml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec.toml"), []byte("[match]\ndefault_severity = \"error\"\n"), 0o644))

	report, err := Check(CheckOptions{Root: root, SeverityOverride: "info"})
	require.NoError(t, err)
	// stray.txt and .fspec.toml are both unaccounted.
	diags := report.Diagnostics()
	require.Len(t, diags, 2)
	require.Equal(t, "info", diags[0].Severity.String())
}

func TestCheckCustomSpecPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), nil, 0o644))
	specPath := filepath.Join(root, "rules.fspec")
	require.NoError(t, os.WriteFile(specPath, []byte("allow /Cargo.toml\n"), 0o644))

	report, err := Check(CheckOptions{Root: root, SpecPath: specPath})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("Cargo.toml"))
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)
}
