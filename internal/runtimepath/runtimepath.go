package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrDaemonRunning is returned by Acquire when another live daemon holds the
// lock for the same display.
var ErrDaemonRunning = errors.New("daemon already running")

// Dir returns the runtime directory used for tilewm state. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// 3) /tmp/tilewm-runtime-<uid> (created)
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	tmpDir := fmt.Sprintf("/tmp/tilewm-runtime-%d", uid)
	if err := os.MkdirAll(tmpDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmpDir, nil
}

// PIDPath returns the lock file for the daemon managing display. An empty
// display falls back to $DISPLAY.
func PIDPath(display string) (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, "tilewm-"+displaySlug(display)+".pid"), nil
}

func displaySlug(display string) string {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	if display == "" {
		return "default"
	}
	return strings.NewReplacer(":", "", "/", "_", ".", "_").Replace(display)
}

// Lock is a held daemon PID file.
type Lock struct {
	path string
}

// Acquire writes the current pid to path. A file left behind by a process
// that no longer exists is taken over. The pid is written to a temporary file
// and hard-linked into place, so path never exists without its content.
func Acquire(path string) (*Lock, error) {
	tmp, err := writeTempPID(path)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp)

	for attempt := 0; attempt < 2; attempt++ {
		err := os.Link(tmp, path)
		if err == nil {
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create pid file: %w", err)
		}

		pid, rerr := readPID(path)
		if rerr == nil && processAlive(pid) {
			return nil, fmt.Errorf("%w (pid %d, %s)", ErrDaemonRunning, pid, path)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale pid file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (%s)", ErrDaemonRunning, path)
}

func writeTempPID(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create pid file: %w", err)
	}
	_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write pid file: %w", errors.Join(werr, cerr))
	}
	return f.Name(), nil
}

// Release removes the pid file.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Path returns the pid file location.
func (l *Lock) Path() string {
	return l.path
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid file %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
