package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Installer resolves manifest dependencies into the local cache and
// pins them in the lockfile.
type Installer struct {
	manifest *Manifest
	cacheDir string
}

// NewInstaller builds an installer rooted at the given cache directory
// (git sources are cloned under <cacheDir>/src).
func NewInstaller(manifest *Manifest, cacheDir string) *Installer {
	return &Installer{manifest: manifest, cacheDir: cacheDir}
}

// Install resolves every manifest dependency, reusing lock pins where
// they exist. It reports whether the lockfile changed and returns
// human-readable progress lines.
func (in *Installer) Install(lock *Lockfile) (bool, []string, error) {
	if in.manifest == nil {
		return false, nil, errors.New("install: no manifest")
	}
	if lock == nil {
		return false, nil, errors.New("install: no lockfile")
	}

	names := make([]string, 0, len(in.manifest.Dependencies))
	for name := range in.manifest.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	changed := false
	var logs []string
	for _, name := range names {
		spec := in.manifest.Dependencies[name]
		if spec == nil {
			continue
		}
		var (
			pkg *LockedPackage
			err error
		)
		switch {
		case spec.Path != "":
			pkg, err = in.installPath(name, spec)
		case spec.Git != "":
			pkg, err = in.installGit(name, spec, lock)
		default:
			err = fmt.Errorf("registry sources are not supported; give %q a git or path source", name)
		}
		if err != nil {
			return changed, logs, fmt.Errorf("install %s: %w", name, err)
		}
		if lock.Upsert(pkg) {
			changed = true
		}
		logs = append(logs, describeLocked(pkg))
	}
	return changed, logs, nil
}

// installPath records a local directory dependency, reading its own
// manifest for the version when one is present.
func (in *Installer) installPath(name string, spec *DependencySpec) (*LockedPackage, error) {
	dir := spec.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(in.manifest.Path), filepath.FromSlash(spec.Path))
	}
	dir = filepath.Clean(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("path source %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path source %s is not a directory", dir)
	}

	version := ""
	if depManifest, err := LoadManifest(filepath.Join(dir, ManifestFileName)); err == nil {
		version = depManifest.Version
	}
	return &LockedPackage{
		Name:    name,
		Source:  "path:" + dir,
		Version: version,
		Dir:     dir,
	}, nil
}

// installGit clones the repository into the cache on first use and
// checks out the requested or previously locked revision.
func (in *Installer) installGit(name string, spec *DependencySpec, lock *Lockfile) (*LockedPackage, error) {
	dest := filepath.Join(in.cacheDir, "src", name)

	repo, err := git.PlainOpen(dest)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(filepath.Dir(dest), 0o755); mkErr != nil {
			return nil, mkErr
		}
		repo, err = git.PlainClone(dest, false, &git.CloneOptions{URL: spec.Git})
	}
	if err != nil {
		return nil, fmt.Errorf("git source %s: %w", spec.Git, err)
	}

	opts := git.CheckoutOptions{Force: true}
	locked, hasLock := lock.FindPackage(name)
	switch {
	case spec.Rev != "":
		opts.Hash = plumbing.NewHash(spec.Rev)
	case hasLock && locked.Rev != "":
		opts.Hash = plumbing.NewHash(locked.Rev)
	case spec.Tag != "":
		opts.Branch = plumbing.NewTagReferenceName(spec.Tag)
	case spec.Branch != "":
		opts.Branch = plumbing.NewBranchReferenceName(spec.Branch)
	}

	if opts.Hash != plumbing.ZeroHash || opts.Branch != "" {
		worktree, err := repo.Worktree()
		if err != nil {
			return nil, err
		}
		if err := worktree.Checkout(&opts); err != nil {
			return nil, fmt.Errorf("checkout %s: %w", spec.Git, err)
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD of %s: %w", spec.Git, err)
	}
	return &LockedPackage{
		Name:   name,
		Source: "git:" + spec.Git,
		Rev:    head.Hash().String(),
		Dir:    dest,
	}, nil
}

func describeLocked(pkg *LockedPackage) string {
	switch {
	case pkg.Rev != "":
		return fmt.Sprintf("resolved %s -> %s @ %s", pkg.Name, pkg.Source, shortRev(pkg.Rev))
	case pkg.Version != "":
		return fmt.Sprintf("resolved %s -> %s (version %s)", pkg.Name, pkg.Source, pkg.Version)
	default:
		return fmt.Sprintf("resolved %s -> %s", pkg.Name, pkg.Source)
	}
}

func shortRev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
