package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection used for i3 socket discovery.
type Connection struct {
	XUtil *xgbutil.XUtil
}

// Connect establishes a connection to the X11 server named by $DISPLAY.
func Connect() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11 server: %w", err)
	}
	return &Connection{XUtil: xu}, nil
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
