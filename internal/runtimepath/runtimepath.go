package runtimepath

import (
	"errors"
	"fmt"
	"os"
)

// Dir returns the per-user runtime directory that i3 places its IPC socket
// under. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
// Nothing is ever created here: workstrip only looks sockets up, it does
// not own the directory.
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	runUserDir := fmt.Sprintf("/run/user/%d", os.Getuid())
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}

	return "", errors.New("no runtime directory: XDG_RUNTIME_DIR is unset and /run/user is unavailable")
}
