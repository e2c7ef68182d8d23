package fswalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fspec-project/fspec/modules/fspattern"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func writeSpec(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".fspec"), []byte(body), 0o644))
}

func TestCheckTreeAnchoredAllow(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Cargo.toml":     "",
		"src/Cargo.toml": "",
	})
	writeSpec(t, root, "allow /Cargo.toml\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("Cargo.toml"))
	require.True(t, report.IsUnaccounted("src"))
	require.True(t, report.IsUnaccounted("src/Cargo.toml"))
}

func TestCheckTreeIgnoreThenAllowPromotesAncestors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bin/tool":       "",
		"bin/allowed.txt": "",
	})
	writeSpec(t, root, "ignore /bin/\nallow /bin/allowed.txt\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("bin"), "ancestor of an explicitly allowed path must be promoted")
	require.True(t, report.IsAllowed("bin/allowed.txt"))
	require.True(t, report.IsIgnored("bin/tool"), "sibling under the ignored dir stays ignored")
}

func TestCheckTreeCrossOccurrenceYearMismatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"movies/1946/its_a_wonderful_life_1946.mp4": "",
		"movies/1946/its_a_wonderful_life_1947.mp4": "",
	})
	writeSpec(t, root, "allow /movies/{year:int(4)}/{tag:snake_case}_{year}.{ext:mp4|mkv}\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("movies/1946/its_a_wonderful_life_1946.mp4"))
	require.True(t, report.IsUnaccounted("movies/1946/its_a_wonderful_life_1947.mp4"), "mismatched year occurrences must not match")
}

func TestCheckTreeDoubleStarZeroOrMore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/file.txt":       "",
		"src/a/b/c/file.txt": "",
	})
	writeSpec(t, root, "allow /src/**/file.txt\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("src/file.txt"))
	require.True(t, report.IsAllowed("src/a/b/c/file.txt"))
}

func TestCheckTreeLastWinsWithInheritance(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"vendor/pkg/a.go": "",
		"vendor/pkg/b.go": "",
	})
	writeSpec(t, root, "allow /vendor/\nignore /vendor/\nallow /vendor/pkg/a.go\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("vendor/pkg/a.go"), "last matching rule (and its ancestor promotion) wins")
	require.True(t, report.IsIgnored("vendor/pkg/b.go"), "inherits the ignored subtree from the later ignore rule")
}

func TestCheckTreeCompatibilityModeBarePattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md": "",
	})
	writeSpec(t, root, "*.md\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	require.True(t, report.IsAllowed("README.md"), "a bare line with no allow/ignore keyword is an implicit allow")
}

func TestCheckTreeSkipsSpecFileAtRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"README.md": ""})
	writeSpec(t, root, "allow /README.md\n")

	report, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.NoError(t, err)
	_, ok := report.StatusOf(".fspec")
	require.False(t, ok, "the spec file itself is never classified")
}

func TestCheckTreeMissingSpecIsSemanticError(t *testing.T) {
	root := t.TempDir()
	_, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.Error(t, err)
	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
}

func TestCheckTreeParseErrorOnBadPattern(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "allow /a//b\n")

	_, err := CheckTree(root, Options{Settings: fspattern.DefaultMatchSettings()})
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestCheckTreeOnVisitCallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/b.txt": ""})
	writeSpec(t, root, "allow /a/b.txt\n")

	var visited []string
	_, err := CheckTree(root, Options{
		Settings: fspattern.DefaultMatchSettings(),
		OnVisit: func(relPath string, isDir bool) {
			visited = append(visited, relPath)
		},
	})
	require.NoError(t, err)
	require.Contains(t, visited, "a")
	require.Contains(t, visited, "a/b.txt")
}
