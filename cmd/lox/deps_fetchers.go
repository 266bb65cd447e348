package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"lox/interpreter-go/pkg/driver"
)

// preludeInstaller fetches the manifest's git preludes into the cache and
// records the resolved commits in the lockfile.
type preludeInstaller struct {
	manifest *driver.Manifest
	cacheDir string
	fetcher  *gitFetcher
}

func newPreludeInstaller(manifest *driver.Manifest, cacheDir string) *preludeInstaller {
	return &preludeInstaller{
		manifest: manifest,
		cacheDir: cacheDir,
		fetcher:  newGitFetcher(cacheDir),
	}
}

// Install brings lock in line with the manifest. Preludes named in refresh
// are fetched again even when their lock entry is still usable. It reports
// whether the lockfile changed, plus progress lines for the user.
func (i *preludeInstaller) Install(lock *driver.Lockfile, refresh map[string]bool) (bool, []string, error) {
	if lock == nil {
		return false, nil, fmt.Errorf("lockfile is required")
	}
	changed := false
	var logs []string
	wanted := make(map[string]bool)
	for _, spec := range i.manifest.GitPreludes() {
		wanted[spec.Name] = true
		existing, ok := lock.Find(spec.Name)
		if ok && !refresh[spec.Name] && lockMatches(existing, spec) && i.checkoutPresent(existing) {
			logs = append(logs, fmt.Sprintf("Using %s %s (%s)", spec.Name, spec.Ref(), shortCommit(existing.Commit)))
			continue
		}
		entry, err := i.fetcher.fetch(spec)
		if err != nil {
			return changed, logs, fmt.Errorf("prelude %s: %w", spec.Name, err)
		}
		if !ok || *existing != *entry {
			changed = true
		}
		lock.Put(entry)
		logs = append(logs, fmt.Sprintf("Fetched %s %s (%s)", spec.Name, spec.Ref(), shortCommit(entry.Commit)))
	}

	kept := lock.Preludes[:0]
	for _, entry := range lock.Preludes {
		if entry != nil && wanted[entry.Name] {
			kept = append(kept, entry)
			continue
		}
		if entry != nil {
			logs = append(logs, fmt.Sprintf("Removed %s", entry.Name))
		}
		changed = true
	}
	lock.Preludes = kept
	return changed, logs, nil
}

func (i *preludeInstaller) checkoutPresent(entry *driver.LockedPrelude) bool {
	info, err := os.Stat(filepath.Join(checkoutDir(i.cacheDir, entry.Name, entry.Commit), filepath.FromSlash(entry.File)))
	return err == nil && !info.IsDir()
}

// lockMatches reports whether a lock entry still describes the manifest entry.
func lockMatches(entry *driver.LockedPrelude, spec *driver.PreludeSpec) bool {
	return entry != nil &&
		entry.Source == spec.Git &&
		entry.Ref == spec.Ref() &&
		entry.File == spec.File &&
		entry.Commit != ""
}

func checkoutDir(cacheDir, name, commit string) string {
	return filepath.Join(cacheDir, "preludes", sanitizePathSegment(name), sanitizePathSegment(commit))
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

type gitFetcher struct {
	cacheDir string
}

func newGitFetcher(cacheDir string) *gitFetcher {
	return &gitFetcher{cacheDir: cacheDir}
}

func (f *gitFetcher) fetch(spec *driver.PreludeSpec) (*driver.LockedPrelude, error) {
	baseDir := filepath.Join(f.cacheDir, "preludes", sanitizePathSegment(spec.Name))
	commit, err := ensureGitCheckout(baseDir, spec)
	if err != nil {
		return nil, err
	}
	checkout := checkoutDir(f.cacheDir, spec.Name, commit)
	entryPath := filepath.Join(checkout, filepath.FromSlash(spec.File))
	if info, err := os.Stat(entryPath); err != nil || info.IsDir() {
		return nil, fmt.Errorf("file %s not found in %s at %s", spec.File, spec.Git, shortCommit(commit))
	}
	checksum, err := dirChecksum(checkout)
	if err != nil {
		return nil, fmt.Errorf("checksum %s: %w", checkout, err)
	}
	return &driver.LockedPrelude{
		Name:     spec.Name,
		Ref:      spec.Ref(),
		Source:   spec.Git,
		Commit:   commit,
		File:     spec.File,
		Checksum: "sha256:" + checksum,
	}, nil
}

// ensureGitCheckout clones the prelude repository, resolves the requested revision and
// leaves the worktree at baseDir/<commit>. It returns the commit hash.
func ensureGitCheckout(baseDir string, spec *driver.PreludeSpec) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}

	revision, err := gitRevisionFromSpec(spec)
	if err != nil {
		return "", err
	}

	if rev := strings.TrimSpace(spec.Rev); plumbing.IsHash(rev) {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               spec.Git,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", spec.Git, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	commit := hash.String()
	targetDir := filepath.Join(baseDir, sanitizePathSegment(commit))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return commit, nil
}

func gitRevisionFromSpec(spec *driver.PreludeSpec) (plumbing.Revision, error) {
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), nil
	}
	return "", fmt.Errorf("git preludes require rev, tag, or branch")
}

// dirChecksum hashes every file under path except git metadata, keyed by
// its slash-separated relative path.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write([]byte{0})
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
