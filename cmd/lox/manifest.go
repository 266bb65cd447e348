package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lox/interpreter-go/pkg/driver"
)

func loadManifestFrom(start string) (*driver.Manifest, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		start = cwd
	}
	manifestPath, err := findManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(manifestPath)
}

// optionalManifest loads the nearest lox.yml, returning nil when none exists.
func optionalManifest(start string) (*driver.Manifest, error) {
	manifest, err := loadManifestFrom(start)
	if err != nil {
		if errors.Is(err, errManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return manifest, nil
}

func findManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.ManifestFileName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

func resolveLoxHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("LOX_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve LOX_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".lox"), nil
}

func lockfilePath(manifest *driver.Manifest) string {
	return filepath.Join(manifest.Dir, driver.LockfileName)
}

func loadLockfileForManifest(manifest *driver.Manifest) (*driver.Lockfile, error) {
	if manifest == nil {
		return nil, nil
	}
	lockPath := lockfilePath(manifest)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if len(manifest.GitPreludes()) > 0 {
				return nil, fmt.Errorf("%s missing for %q; run `lox deps install`", driver.LockfileName, manifest.Name)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lockfile %s: %w", lockPath, err)
	}
	if lock.Root != manifest.Name {
		return nil, fmt.Errorf("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
	}
	return lock, nil
}

// preludePaths lists the prelude files to run, in manifest order.
func preludePaths(manifest *driver.Manifest, lock *driver.Lockfile) ([]string, error) {
	if manifest == nil || len(manifest.Preludes) == 0 {
		return nil, nil
	}
	var cacheDir string
	paths := make([]string, 0, len(manifest.Preludes))
	for _, spec := range manifest.Preludes {
		if !spec.IsGit() {
			paths = append(paths, manifest.LocalPreludePath(spec))
			continue
		}
		entry, ok := lock.Find(spec.Name)
		if !ok || !lockMatches(entry, spec) {
			return nil, fmt.Errorf("prelude %q is not installed; run `lox deps install`", spec.Name)
		}
		if cacheDir == "" {
			home, err := resolveLoxHome()
			if err != nil {
				return nil, err
			}
			cacheDir = home
		}
		paths = append(paths, filepath.Join(checkoutDir(cacheDir, entry.Name, entry.Commit), filepath.FromSlash(entry.File)))
	}
	return paths, nil
}
