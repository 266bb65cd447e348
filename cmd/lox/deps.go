package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/session"
)

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "lox deps requires a subcommand (install, update)")
		return session.ExitUsage
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "lox deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return session.ExitUsage
		}
		return installPreludes(nil, false)
	case "update":
		return installPreludes(args[1:], true)
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return session.ExitUsage
	}
}

// installPreludes resolves git preludes and writes lox.lock. With update set,
// the named preludes (or all of them when none are named) are refetched.
func installPreludes(targets []string, update bool) int {
	manifest, err := loadManifestFrom("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load %s: %v\n", driver.ManifestFileName, err)
		return session.ExitFailure
	}
	cacheDir, err := resolveLoxHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve LOX_HOME: %v\n", err)
		return session.ExitFailure
	}

	refresh := make(map[string]bool)
	if update {
		known := make(map[string]bool)
		for _, spec := range manifest.GitPreludes() {
			known[spec.Name] = true
		}
		if len(targets) == 0 {
			refresh = known
		}
		for _, name := range targets {
			if !known[name] {
				fmt.Fprintf(os.Stderr, "unknown git prelude %q\n", name)
				return session.ExitUsage
			}
			refresh[name] = true
		}
	}

	fmt.Fprintf(os.Stdout, "Manifest: %s\n", manifest.Path)
	fmt.Fprintf(os.Stdout, "Git preludes: %d\n", len(manifest.GitPreludes()))
	fmt.Fprintf(os.Stdout, "Cache directory: %s\n", cacheDir)

	lockPath := lockfilePath(manifest)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", lock.Root, manifest.Name)
			return session.ExitFailure
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lockCreated = true
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return session.ExitFailure
	}
	lock.Path = lockPath
	lock.Tool = cliToolVersion

	installer := newPreludeInstaller(manifest, cacheDir)
	changed, logs, err := installer.Install(lock, refresh)
	for _, line := range logs {
		fmt.Fprintln(os.Stdout, line)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to install preludes: %v\n", err)
		return session.ExitFailure
	}

	if changed || lockCreated {
		action := "Updated"
		if lockCreated {
			action = "Created"
		}
		if err := driver.WriteLockfile(lock, lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
			return session.ExitFailure
		}
		fmt.Fprintf(os.Stdout, "%s %s: %s\n", action, driver.LockfileName, lock.Path)
	} else {
		fmt.Fprintf(os.Stdout, "%s already up to date: %s\n", driver.LockfileName, lock.Path)
	}
	fmt.Fprintln(os.Stdout, "Preludes installed.")
	return session.ExitOK
}
