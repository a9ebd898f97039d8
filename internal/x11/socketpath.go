package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgbutil/xprop"
)

// SocketPath reads the I3_SOCKET_PATH property i3 sets on the root window.
// The property survives i3 restarts, which makes it more reliable than a
// stale I3SOCK inherited from the environment.
func (c *Connection) SocketPath() (string, error) {
	path, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, c.XUtil.RootWin(), "I3_SOCKET_PATH"))
	if err != nil {
		return "", fmt.Errorf("failed to read I3_SOCKET_PATH: %w", err)
	}
	// Some property writers include the terminating NUL.
	return strings.TrimRight(path, "\x00"), nil
}
