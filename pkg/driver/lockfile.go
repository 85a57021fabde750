package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LockFileName sits next to the manifest and pins resolved sources.
const LockFileName = "ruchy.lock"

// Lockfile records the resolved dependency set for a project.
type Lockfile struct {
	Root     string           `yaml:"root"`
	Tool     string           `yaml:"tool,omitempty"`
	Packages []*LockedPackage `yaml:"packages"`

	// Path is where the lockfile was read from or will be written.
	Path string `yaml:"-"`
}

// LockedPackage pins one dependency to a concrete source.
type LockedPackage struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Version string `yaml:"version,omitempty"`
	Rev     string `yaml:"rev,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// NewLockfile builds an empty lockfile for the named root package.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{Root: root, Tool: tool}
}

// LoadLockfile reads and validates ruchy.lock.
func LoadLockfile(path string) (*Lockfile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var lock Lockfile
	if err := decoder.Decode(&lock); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("lockfile: %s is empty", absPath)
		}
		return nil, fmt.Errorf("lockfile: parse %s: %w", absPath, err)
	}
	if strings.TrimSpace(lock.Root) == "" {
		return nil, fmt.Errorf("lockfile: %s missing root package name", absPath)
	}
	for i, pkg := range lock.Packages {
		if pkg == nil || strings.TrimSpace(pkg.Name) == "" {
			return nil, fmt.Errorf("lockfile: %s packages[%d] missing name", absPath, i)
		}
	}
	lock.Path = absPath
	return &lock, nil
}

// WriteLockfile serializes the lockfile with packages in name order.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return errors.New("lockfile: nothing to write")
	}
	sort.Slice(lock.Packages, func(i, j int) bool {
		return lock.Packages[i].Name < lock.Packages[j].Name
	})
	data, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("lockfile: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	lock.Path = path
	return nil
}

// FindPackage returns the locked entry for a dependency name.
func (l *Lockfile) FindPackage(name string) (*LockedPackage, bool) {
	if l == nil {
		return nil, false
	}
	for _, pkg := range l.Packages {
		if pkg != nil && pkg.Name == name {
			return pkg, true
		}
	}
	return nil, false
}

// Upsert replaces or appends a locked entry, reporting whether the
// set changed.
func (l *Lockfile) Upsert(pkg *LockedPackage) bool {
	if pkg == nil {
		return false
	}
	for i, existing := range l.Packages {
		if existing != nil && existing.Name == pkg.Name {
			if *existing == *pkg {
				return false
			}
			l.Packages[i] = pkg
			return true
		}
	}
	l.Packages = append(l.Packages, pkg)
	return true
}
