package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/runner"
)

// writeTree creates files (relative path -> content) under dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

var sampleTree = map[string]string{
	"src/main.cpp":                 "int main() { return 0; }\n",
	"src/util.cc":                  "void util() {}\n",
	"include/app/util.hpp":         "#pragma once\nvoid util();\n",
	"include/app/config.h":         "#pragma once\n",
	"include/app/ring_buffer":      "#pragma once\nnamespace app {\ntemplate <typename T>\nclass RingBuffer {};\n}\n",
	"third_party/lib/lib.cpp":      "int lib;\n",
	"src/gen/messages_generated.h": "struct Msg {};\n",
	"docs/README.md":               "# docs\n",
	"scripts/build":                "#!/bin/sh\nmake\n",
	".git/hooks/pre-commit.cpp":    "int hidden;\n",
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "configured extensions",
			want: []string{
				"include/app/config.h",
				"include/app/util.hpp",
				"src/gen/messages_generated.h",
				"src/main.cpp",
				"src/util.cc",
				"third_party/lib/lib.cpp",
			},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"third_party/**", "*_generated.h"}},
			want: []string{
				"include/app/config.h",
				"include/app/util.hpp",
				"src/main.cpp",
				"src/util.cc",
			},
		},
		{
			name: "exclude directory without stars",
			opts: runner.Options{ExcludeGlobs: []string{"src"}},
			want: []string{
				"include/app/config.h",
				"include/app/util.hpp",
				"third_party/lib/lib.cpp",
			},
		},
		{
			name: "include globs",
			opts: runner.Options{IncludeGlobs: []string{"include/**"}},
			want: []string{"include/app/config.h", "include/app/util.hpp"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".CC"}},
			want: []string{"src/util.cc"},
		},
		{
			name: "sniff extension-less headers",
			opts: runner.Options{SniffHeaders: true, IncludeGlobs: []string{"include/**", "scripts/**"}},
			want: []string{"include/app/config.h", "include/app/ring_buffer", "include/app/util.hpp"},
		},
		{
			name: "explicit paths are de-duplicated",
			opts: runner.Options{Paths: []string{"src", "src/main.cpp", "./src/main.cpp"}},
			want: []string{"src/gen/messages_generated.h", "src/main.cpp", "src/util.cc"},
		},
		{
			name: "explicit extension-less header",
			opts: runner.Options{Paths: []string{"include/app/ring_buffer", "scripts/build", "docs/README.md"}},
			want: []string{"include/app/ring_buffer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeTree(t, dir, sampleTree)

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
			for _, f := range files {
				assert.True(t, filepath.IsAbs(f), f)
			}
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"does-not-exist"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, sampleTree)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	writeTree(t, dir, map[string]string{"real/a.cpp": "int a;\n", "src/b.cpp": "int b;\n"})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "src", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.cpp"), filepath.Join(dir, "src", "broken.cpp")))

	files, err := runner.Discover(context.Background(), runner.Options{Paths: []string{"src"}, WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/b.cpp"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{
		Paths:          []string{"src"},
		WorkingDir:     dir,
		FollowSymlinks: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"real/a.cpp", "src/b.cpp"}, relPaths(t, dir, files))
}
