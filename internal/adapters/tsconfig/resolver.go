// Package tsconfig resolves the compiler configuration through the compiler itself.
package tsconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.trai.ch/tsbuild/internal/core/domain"
	"go.trai.ch/tsbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver implements ports.ConfigResolver by running `tsc --showConfig`.
// The compiler expands "extends" chains, so only its output is inspected.
type Resolver struct {
	runner   ports.ProcessRunner
	compiler []string
	workDir  string
}

var _ ports.ConfigResolver = (*Resolver)(nil)

// NewResolver creates a Resolver that invokes the given compiler command prefix.
func NewResolver(runner ports.ProcessRunner, compiler []string) *Resolver {
	return &Resolver{runner: runner, compiler: compiler}
}

// WithWorkDir sets the directory discovery starts from. Defaults to the process working directory.
func (r *Resolver) WithWorkDir(dir string) *Resolver {
	r.workDir = dir
	return r
}

// Resolve locates the project file and reads outDir and rootDir from the compiler.
func (r *Resolver) Resolve(ctx context.Context, project string) (domain.BuildConfig, error) {
	cwd, err := r.cwd()
	if err != nil {
		return domain.BuildConfig{}, errors.Join(domain.ErrConfig, err)
	}

	path, err := locate(cwd, project)
	if err != nil {
		return domain.BuildConfig{}, errors.Join(domain.ErrConfig, err)
	}

	cfg := domain.BuildConfig{
		ProjectConfigPath: path,
		ConfigDir:         filepath.Dir(path),
	}

	spec := domain.NewProcessSpec(domain.LabelCompiler, r.compiler, cfg.ConfigDir, "--showConfig", "-p", path)
	out, err := r.runner.RunOnce(ctx, spec)
	if err != nil {
		return cfg, errors.Join(domain.ErrConfig, domain.ErrShowConfigFailed, zerr.With(err, "project", path))
	}

	if !gjson.Valid(out) {
		return cfg, errors.Join(domain.ErrConfig,
			zerr.With(zerr.Wrap(domain.ErrShowConfigParse, "unexpected compiler output"), "project", path))
	}

	options := gjson.Get(out, "compilerOptions")
	if outDir := options.Get("outDir"); outDir.Exists() && outDir.String() != "" {
		cfg.OutputRoot = resolveAgainst(cfg.ConfigDir, outDir.String())
	}
	if rootDir := options.Get("rootDir"); rootDir.Exists() && rootDir.String() != "" {
		cfg.SourceRoot = resolveAgainst(cfg.ConfigDir, rootDir.String())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Join(domain.ErrConfig, err)
	}
	return cfg, nil
}

func (r *Resolver) cwd() (string, error) {
	if r.workDir != "" {
		return filepath.Abs(r.workDir)
	}
	return os.Getwd()
}

// locate turns the --project value into an absolute tsconfig path.
// A directory gets tsconfig.json appended; no value walks up from cwd.
func locate(cwd, project string) (string, error) {
	if project == "" {
		return discover(cwd)
	}

	path := resolveAgainst(cwd, project)
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "project does not exist"), "project", path)
	}
	if info.IsDir() {
		path = filepath.Join(path, domain.TSConfigFileName)
		if _, err := os.Stat(path); err != nil {
			return "", domain.Tag(domain.ErrConfigNotFound, "dir", filepath.Dir(path))
		}
	}
	return path, nil
}

func discover(cwd string) (string, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.TSConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", domain.Tag(domain.ErrConfigNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
