package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"ruchy/interpreter-go/pkg/driver"
	"ruchy/interpreter-go/pkg/interpreter"
	"ruchy/interpreter-go/pkg/runtime"
)

const cliToolVersion = "ruchy-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}
	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "repl":
		return runRepl(os.Stdin)
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  ruchy run [target]")
	fmt.Fprintln(os.Stderr, "  ruchy run <module.yaml> [more modules, run as separate sessions]")
	fmt.Fprintln(os.Stderr, "  ruchy repl")
	fmt.Fprintln(os.Stderr, "  ruchy deps install")
	fmt.Fprintln(os.Stderr, "  ruchy deps update [dependency ...]")
	fmt.Fprintln(os.Stderr, "  ruchy version")
}

func runEntry(args []string) int {
	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		if err := checkLockfile(manifest); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		target, err := manifest.DefaultExecutableTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		entry, err := manifest.MainPath(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve target entrypoint: %v\n", err)
			return 1
		}
		return executeSession(entry, os.Stdout)
	}

	// A single non-path argument may name a manifest target.
	if len(args) == 1 && !looksLikePathCandidate(args[0]) {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		target, ok := manifest.FindTarget(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "manifest defines no target %q\n", args[0])
			return 1
		}
		if err := checkLockfile(manifest); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		entry, err := manifest.MainPath(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve target %q: %v\n", target.Name, err)
			return 1
		}
		return executeSession(entry, os.Stdout)
	}

	if len(args) == 1 {
		return executeSession(args[0], os.Stdout)
	}
	return executeConcurrentSessions(args)
}

// executeSession evaluates one module file in a fresh session and
// prints a non-nil result.
func executeSession(entry string, stdout *os.File) int {
	program, err := driver.LoadProgram([]string{entry})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load program: %v\n", err)
		return 1
	}
	interp := interpreter.New()
	interp.Stdout = stdout

	var result runtime.Value = runtime.NilValue{}
	for _, mod := range program.Modules {
		value, _, err := interp.EvaluateModule(mod.AST)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", mod.Path, err)
			return 1
		}
		result = value
	}
	if _, isNil := result.(runtime.NilValue); !isNil {
		fmt.Fprintln(stdout, interp.Stringify(result))
	}
	return 0
}

// executeConcurrentSessions runs each file in its own session, one
// goroutine per session. Sessions share nothing, so this is safe;
// results print in argument order once every session finishes.
func executeConcurrentSessions(paths []string) int {
	type outcome struct {
		result runtime.Value
		render string
		err    error
	}
	outcomes := make([]outcome, len(paths))

	var group errgroup.Group
	for idx, path := range paths {
		idx, path := idx, path // per-iteration copies; go directive is below 1.22
		group.Go(func() error {
			module, err := driver.LoadModule(path)
			if err != nil {
				outcomes[idx].err = err
				return err
			}
			interp := interpreter.New()
			interp.Stdout = os.Stdout
			value, _, err := interp.EvaluateModule(module.AST)
			if err != nil {
				outcomes[idx].err = err
				return err
			}
			outcomes[idx].result = value
			outcomes[idx].render = interp.Stringify(value)
			return nil
		})
	}
	waitErr := group.Wait()

	code := 0
	for idx, path := range paths {
		switch {
		case outcomes[idx].err != nil:
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, outcomes[idx].err)
			code = 1
		default:
			if _, isNil := outcomes[idx].result.(runtime.NilValue); !isNil {
				fmt.Fprintf(os.Stdout, "%s: %s\n", path, outcomes[idx].render)
			}
		}
	}
	if waitErr != nil {
		code = 1
	}
	return code
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") {
		return true
	}
	switch filepath.Ext(arg) {
	case ".yaml", ".yml":
		return true
	}
	return strings.HasPrefix(arg, ".")
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	if start == "" || start == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		start = cwd
	}
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

// checkLockfile insists on an up-to-date ruchy.lock when the manifest
// declares dependencies.
func checkLockfile(manifest *driver.Manifest) error {
	if manifest == nil {
		return nil
	}
	lockPath := filepath.Join(filepath.Dir(manifest.Path), driver.LockFileName)
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if len(manifest.Dependencies) > 0 || len(manifest.DevDependencies) > 0 {
				return fmt.Errorf("%s missing for %q; run `ruchy deps install`", driver.LockFileName, manifest.Name)
			}
			return nil
		}
		return fmt.Errorf("failed to read lockfile %s: %w", lockPath, err)
	}
	if lock.Root != manifest.Name {
		return fmt.Errorf("lockfile root %q does not match manifest name %q", lock.Root, manifest.Name)
	}
	return nil
}

func resolveRuchyHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv("RUCHY_HOME")); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("resolve RUCHY_HOME %q: %w", home, err)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(userHome, ".ruchy"), nil
}
