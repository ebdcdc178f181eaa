package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed form of a sable.toml.
type Manifest struct {
	// Package name and the source root, relative to the manifest dir.
	Name string
	Root string
	// Lowering options.
	MaxErrors uint
	Cache     bool
	CacheDir  string
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageRootMissing indicates that [package].root is missing.
	ErrPackageRootMissing = errors.New("missing [package].root")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
		Root string `toml:"root"`
	} `toml:"package"`
	Lowering struct {
		MaxErrors uint   `toml:"max_errors"`
		Cache     bool   `toml:"cache"`
		CacheDir  string `toml:"cache_dir"`
	} `toml:"lowering"`
}

// Load parses a sable.toml manifest.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	root := strings.TrimSpace(cfg.Package.Root)
	if !meta.IsDefined("package", "root") || root == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageRootMissing)
	}
	return Manifest{
		Name:      strings.TrimSpace(cfg.Package.Name),
		Root:      root,
		MaxErrors: cfg.Lowering.MaxErrors,
		Cache:     cfg.Lowering.Cache,
		CacheDir:  cfg.Lowering.CacheDir,
	}, nil
}

// ResolveRoot resolves and validates the source root against the
// project root. The root must stay inside the project.
func ResolveRoot(projectRoot, root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", ErrPackageRootMissing
	}
	if filepath.IsAbs(root) {
		return "", fmt.Errorf("invalid [package].root %q: must be relative", root)
	}
	clean := filepath.Clean(filepath.FromSlash(root))
	if clean == "." {
		clean = ""
	}
	rootPath := filepath.Join(projectRoot, clean)
	if !pathWithin(projectRoot, rootPath) {
		return "", fmt.Errorf("invalid [package].root %q: escapes project root", root)
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return "", fmt.Errorf("invalid [package].root %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [package].root %q: not a directory", root)
	}
	return rootPath, nil
}

func pathWithin(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
