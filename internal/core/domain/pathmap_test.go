package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsbuild/internal/core/domain"
)

func TestPathMapper_ToOutputPath(t *testing.T) {
	src := filepath.FromSlash("/project/src")
	out := filepath.FromSlash("/project/dist")
	m := domain.NewPathMapper(src, out)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "nested file", input: "/project/src/a/b.ts", want: "/project/dist/a/b.ts"},
		{name: "root itself", input: "/project/src", want: "/project/dist"},
		{name: "unclean path", input: "/project/src/a/../c/d.png", want: "/project/dist/c/d.png"},
		{name: "sibling directory", input: "/project/srcx/a.ts", wantErr: true},
		{name: "parent directory", input: "/project/a.ts", wantErr: true},
		{name: "relative path", input: "a.ts", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ToOutputPath(filepath.FromSlash(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrPathOutsideSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestPathMapper_EmittedArtifactPaths(t *testing.T) {
	m := domain.NewPathMapper("/project/src", "/project/dist")

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "typescript",
			input: "/project/src/a/b.ts",
			want: []string{
				"/project/dist/a/b.js",
				"/project/dist/a/b.js.map",
				"/project/dist/a/b.d.ts",
				"/project/dist/a/b.d.ts.map",
			},
		},
		{
			name:  "tsx",
			input: "/project/src/view.tsx",
			want: []string{
				"/project/dist/view.js",
				"/project/dist/view.js.map",
				"/project/dist/view.d.ts",
				"/project/dist/view.d.ts.map",
			},
		},
		{
			name:  "esm module",
			input: "/project/src/mod.mts",
			want: []string{
				"/project/dist/mod.mjs",
				"/project/dist/mod.mjs.map",
				"/project/dist/mod.d.mts",
				"/project/dist/mod.d.mts.map",
			},
		},
		{
			name:  "commonjs module",
			input: "/project/src/mod.cts",
			want: []string{
				"/project/dist/mod.cjs",
				"/project/dist/mod.cjs.map",
				"/project/dist/mod.d.cts",
				"/project/dist/mod.d.cts.map",
			},
		},
		{
			name:  "dotted file name keeps inner dots",
			input: "/project/src/a.spec.ts",
			want: []string{
				"/project/dist/a.spec.js",
				"/project/dist/a.spec.js.map",
				"/project/dist/a.spec.d.ts",
				"/project/dist/a.spec.d.ts.map",
			},
		},
		{
			name:  "declaration file is mirrored",
			input: "/project/src/types/global.d.ts",
			want:  []string{"/project/dist/types/global.d.ts"},
		},
		{
			name:  "asset is mirrored",
			input: "/project/src/assets/logo.png",
			want:  []string{"/project/dist/assets/logo.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.EmittedArtifactPaths(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathMapper_EmittedArtifactPathsOutsideRoot(t *testing.T) {
	m := domain.NewPathMapper("/project/src", "/project/dist")

	_, err := m.EmittedArtifactPaths("/elsewhere/a.ts")
	require.ErrorIs(t, err, domain.ErrPathOutsideSource)
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, domain.IsSourceFile("/src/a.ts"))
	assert.True(t, domain.IsSourceFile("/src/a.tsx"))
	assert.True(t, domain.IsSourceFile("/src/a.mts"))
	assert.True(t, domain.IsSourceFile("/src/a.js"))
	assert.False(t, domain.IsSourceFile("/src/a.d.ts"))
	assert.False(t, domain.IsSourceFile("/src/a.json"))
	assert.False(t, domain.IsSourceFile("/src/Makefile"))
}
