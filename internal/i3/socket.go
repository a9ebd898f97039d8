package i3

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/workstrip/internal/runtimepath"
	"github.com/1broseidon/workstrip/internal/x11"
)

// DiscoverSocketPath locates the i3 IPC socket. Checked in order:
// 1) I3SOCK (if set)
// 2) the I3_SOCKET_PATH property on the X11 root window
// 3) `i3 --get-socketpath`
// 4) ipc-socket files under <runtime dir>/i3 (newest wins)
// Steps that fail are skipped silently; only the exhausted chain errors.
func DiscoverSocketPath() (string, error) {
	if path := os.Getenv("I3SOCK"); path != "" {
		return path, nil
	}
	if path, err := socketPathFromX11(); err == nil && path != "" {
		return path, nil
	}
	if path, err := socketPathFromBinary(); err == nil && path != "" {
		return path, nil
	}
	if path, err := socketPathFromRuntimeDir(); err == nil && path != "" {
		return path, nil
	}
	return "", errors.New("cannot locate the i3 socket: set I3SOCK or socket_path in the config")
}

func socketPathFromX11() (string, error) {
	conn, err := x11.Connect()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return conn.SocketPath()
}

func socketPathFromBinary() (string, error) {
	out, err := exec.Command("i3", "--get-socketpath").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run i3 --get-socketpath: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// socketPathFromRuntimeDir globs for i3's per-session socket files. Stale
// sockets from dead sessions can linger, so the most recently modified
// match wins.
func socketPathFromRuntimeDir() (string, error) {
	dir, err := runtimepath.Dir()
	if err != nil {
		return "", err
	}

	matches, err := filepath.Glob(filepath.Join(dir, "i3", "ipc-socket.*"))
	if err != nil {
		return "", fmt.Errorf("failed to scan runtime directory: %w", err)
	}
	if len(matches) == 0 {
		return "", errors.New("no i3 socket under the runtime directory")
	}

	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches[0], nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
