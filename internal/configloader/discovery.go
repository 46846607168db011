package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yaklabco/pyhl/pkg/config"
)

// Layer names a configuration source, lowest precedence first.
type Layer string

// Configuration layers loaded from files.
const (
	LayerSystem   Layer = "system"
	LayerUser     Layer = "user"
	LayerProject  Layer = "project"
	LayerExplicit Layer = "explicit"
)

// ConfigPaths holds the discovered configuration files. Missing files are empty.
type ConfigPaths struct {
	System   string // /etc/pyhl/config.yaml
	User     string // $XDG_CONFIG_HOME/pyhl/config.yaml
	Project  string // .pyhl.yml, or a pyproject.toml with [tool.pyhl]
	Explicit string // --config
}

// Path returns the file discovered for layer.
func (p *ConfigPaths) Path(layer Layer) string {
	switch layer {
	case LayerSystem:
		return p.System
	case LayerUser:
		return p.User
	case LayerProject:
		return p.Project
	case LayerExplicit:
		return p.Explicit
	default:
		return ""
	}
}

// projectConfigNames are checked in each directory before pyproject.toml.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = []string{".pyhl.yml", ".pyhl.yaml", "pyhl.yml", "pyhl.yaml"}

// DiscoverPaths locates the system, user and project configuration files.
// The project file is searched for upward from workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstConfigIn(systemConfigDir()),
		User:    firstConfigIn(userConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/pyhl"
	}
	if dir := os.Getenv("ProgramData"); dir != "" {
		return filepath.Join(dir, "pyhl")
	}
	return `C:\ProgramData\pyhl`
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "pyhl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pyhl")
}

func firstConfigIn(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks from startDir towards the root and returns the first
// .pyhl.yml (or variant) found, or a pyproject.toml that has a [tool.pyhl] table.
// The walk ends at a repository root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := projectConfigIn(dir); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func projectConfigIn(dir string) string {
	for _, name := range projectConfigNames {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}

	path := filepath.Join(dir, config.PyprojectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	// A pyproject.toml that fails to parse is still claimed so the error is reported.
	if _, err := config.FromPyproject(data); errors.Is(err, config.ErrNoToolTable) {
		return ""
	}
	return path
}

func isRepoRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		// .git is a file in worktrees and submodules.
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
