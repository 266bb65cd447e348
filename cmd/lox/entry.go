package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/session"
)

// runEntry runs each script in its own session. Without arguments the
// nearest manifest's main is run. The first failing script stops the run.
func runEntry(args []string, opts runOptions) int {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		manifest, err := optionalManifest("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return session.ExitFailure
		}
		if manifest == nil || manifest.MainPath() == "" {
			fmt.Fprintf(os.Stderr, "lox run: no script given and no main in %s\n", driver.ManifestFileName)
			printUsage()
			return session.ExitUsage
		}
		return executeEntry(manifest.MainPath(), manifest, opts)
	}

	for _, path := range args {
		manifest, err := optionalManifest(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return session.ExitFailure
		}
		if code := executeEntry(path, manifest, opts); code != session.ExitOK {
			return code
		}
	}
	return session.ExitOK
}

func executeEntry(path string, manifest *driver.Manifest, opts runOptions) int {
	sess, err := newSession(manifest, opts, os.Stdout)
	if err != nil {
		reportError(err)
		return session.ExitCode(err)
	}
	if err := sess.RunFile(path); err != nil {
		reportError(err)
		return session.ExitCode(err)
	}
	return session.ExitOK
}

// runCheck reports static diagnostics without executing anything.
func runCheck(args []string, opts runOptions) int {
	if len(args) == 0 {
		manifest, err := optionalManifest("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return session.ExitFailure
		}
		if manifest == nil || manifest.MainPath() == "" {
			fmt.Fprintf(os.Stderr, "lox check: no script given and no main in %s\n", driver.ManifestFileName)
			return session.ExitUsage
		}
		args = []string{manifest.MainPath()}
	}

	code := session.ExitOK
	sess := session.New(session.Options{Stdout: io.Discard, MaxCallDepth: opts.maxCallDepth})
	for _, path := range args {
		diags, err := sess.CheckFile(path)
		if err != nil {
			reportError(err)
			return session.ExitCode(err)
		}
		if len(diags) == 0 {
			fmt.Fprintf(os.Stdout, "%s: ok\n", path)
			continue
		}
		for _, diag := range diags {
			fmt.Fprintln(os.Stderr, driver.DescribeDiagnostic(diag))
		}
		code = session.ExitStatic
	}
	return code
}

// newSession builds a session configured from the manifest and flags and
// runs the manifest's preludes into it.
func newSession(manifest *driver.Manifest, opts runOptions, stdout io.Writer) (*session.Session, error) {
	depth := opts.maxCallDepth
	if !opts.maxCallDepthSet && manifest != nil {
		depth = manifest.Limits.MaxCallDepth
	}
	sess := session.New(session.Options{Stdout: stdout, MaxCallDepth: depth})
	if manifest == nil {
		return sess, nil
	}
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		return nil, err
	}
	paths, err := preludePaths(manifest, lock)
	if err != nil {
		return nil, err
	}
	if err := sess.LoadPreludes(paths); err != nil {
		return nil, err
	}
	return sess, nil
}

func reportError(err error) {
	msg := strings.TrimRight(err.Error(), "\n")
	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
}
