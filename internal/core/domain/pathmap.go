package domain

import (
	"errors"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// artifactSuffixes lists, per source extension, the files the compiler emits for one source file.
var artifactSuffixes = map[string][]string{
	".ts":  {".js", ".js.map", ".d.ts", ".d.ts.map"},
	".tsx": {".js", ".js.map", ".d.ts", ".d.ts.map"},
	".mts": {".mjs", ".mjs.map", ".d.mts", ".d.mts.map"},
	".cts": {".cjs", ".cjs.map", ".d.cts", ".d.cts.map"},
	".js":  {".js", ".js.map", ".d.ts", ".d.ts.map"},
	".jsx": {".js", ".js.map", ".d.ts", ".d.ts.map"},
	".mjs": {".mjs", ".mjs.map", ".d.mts", ".d.mts.map"},
	".cjs": {".cjs", ".cjs.map", ".d.cts", ".d.cts.map"},
}

// declarationSuffixes are hand-written declaration files. The compiler never emits output for
// them, so they are mirrored like any other asset.
var declarationSuffixes = []string{".d.ts", ".d.mts", ".d.cts"}

// PathMapper maps paths in the source tree to their counterparts in the output tree.
type PathMapper struct {
	sourceRoot string
	outputRoot string
}

// NewPathMapper creates a PathMapper for the given absolute roots.
func NewPathMapper(sourceRoot, outputRoot string) PathMapper {
	return PathMapper{
		sourceRoot: filepath.Clean(sourceRoot),
		outputRoot: filepath.Clean(outputRoot),
	}
}

// SourceRoot returns the absolute source root.
func (m PathMapper) SourceRoot() string {
	return m.sourceRoot
}

// OutputRoot returns the absolute output root.
func (m PathMapper) OutputRoot() string {
	return m.outputRoot
}

// ToOutputPath re-roots a source path under the output root.
func (m PathMapper) ToOutputPath(sourcePath string) (string, error) {
	rel, err := filepath.Rel(m.sourceRoot, filepath.Clean(sourcePath))
	if err != nil {
		return "", errors.Join(ErrPathOutsideSource, zerr.With(err, "path", sourcePath))
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", zerr.With(zerr.Wrap(ErrPathOutsideSource, "cannot map path"), "path", sourcePath)
	}
	return filepath.Join(m.outputRoot, rel), nil
}

// EmittedArtifactPaths returns every output file the compiler produces for a source file.
// Paths that are not source files map to their single mirrored output path.
func (m PathMapper) EmittedArtifactPaths(sourceFile string) ([]string, error) {
	out, err := m.ToOutputPath(sourceFile)
	if err != nil {
		return nil, err
	}

	ext := sourceExtension(sourceFile)
	suffixes, ok := artifactSuffixes[ext]
	if !ok {
		return []string{out}, nil
	}

	stem := strings.TrimSuffix(out, ext)
	paths := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		paths = append(paths, stem+suffix)
	}
	return paths, nil
}

// IsSourceFile reports whether the compiler emits artifacts for the given path.
func IsSourceFile(path string) bool {
	_, ok := artifactSuffixes[sourceExtension(path)]
	return ok
}

// sourceExtension returns the compilable extension of path, or "" for declarations and assets.
func sourceExtension(path string) string {
	base := filepath.Base(path)
	for _, suffix := range declarationSuffixes {
		if strings.HasSuffix(base, suffix) {
			return ""
		}
	}
	return filepath.Ext(base)
}
