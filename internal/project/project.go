package project

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"github.com/brandonbloom/railskit/internal/config"
	"github.com/brandonbloom/railskit/internal/gitutil"
)

var (
	// ErrNotFound indicates no Rails application root could be discovered.
	ErrNotFound = errors.New("no Rails application found; run inside a directory created by `rails new`")
	// ErrAlreadyApplied indicates the target already carries git metadata.
	ErrAlreadyApplied = errors.New("target already has a .git directory; the recipe is not idempotent (use --force to run anyway)")
)

// Project is a Rails application root discovered on disk.
type Project struct {
	Root       string
	Name       string
	ConfigPath string
	Config     config.Config
}

// Discover walks upward from start until it finds a Rails application
// root. An empty configPath means railskit.toml in that root.
func Discover(start, configPath string) (*Project, error) {
	root, err := locateRoot(start)
	if err != nil {
		return nil, err
	}
	return Load(root, configPath)
}

// Load constructs a Project from a known root directory.
func Load(root, configPath string) (*Project, error) {
	if !IsRailsRoot(root) {
		return nil, ErrNotFound
	}
	if configPath == "" {
		configPath = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:       root,
		Name:       appName(root),
		ConfigPath: configPath,
		Config:     cfg,
	}, nil
}

// HasGit reports whether the root already holds a repository.
func (p *Project) HasGit() bool {
	return gitutil.IsRepo(p.Root)
}

// IsRailsRoot reports whether dir looks like the root of a Rails app.
func IsRailsRoot(dir string) bool {
	return isFile(filepath.Join(dir, "Gemfile")) && isFile(filepath.Join(dir, "config", "application.rb"))
}

func locateRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if IsRailsRoot(cur) {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

var modulePattern = regexp.MustCompile(`(?m)^module\s+([A-Z][A-Za-z0-9_]*)`)

// appName prefers the application module declared in config/application.rb
// and falls back to the directory name.
func appName(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "config", "application.rb"))
	if err == nil {
		if m := modulePattern.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}
	return filepath.Base(root)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
