package i3

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
)

// Client is a persistent connection to the i3 IPC socket. A Client serves
// one of two roles: synchronous queries, or (after Subscribe) reading the
// event stream. i3 interleaves event frames with query replies on a shared
// connection, so the two roles never share a Client.
//
// No deadlines are set anywhere: queries block until i3 replies and event
// reads block until i3 has something to say.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Connect opens a connection to the i3 socket. An empty socketPath triggers
// discovery via DiscoverSocketPath.
func Connect(socketPath string) (*Client, error) {
	path := socketPath
	if path == "" {
		discovered, err := DiscoverSocketPath()
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to i3 socket: %w", err)
	}
	return newClient(conn), nil
}

func newClient(conn net.Conn) *Client {
	return &Client{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// Close closes the underlying connection. A blocked NextWorkspaceEvent on
// the same Client returns an error once the connection is closed.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip sends one request and reads its reply. Only valid on a
// connection that has not been subscribed.
func (c *Client) roundTrip(msgType MessageType, payload []byte) ([]byte, error) {
	if err := writeMessage(c.conn, msgType, payload); err != nil {
		return nil, err
	}

	rawType, reply, err := readMessage(c.reader)
	if err != nil {
		return nil, err
	}
	if isEvent(rawType) || MessageType(rawType) != msgType {
		return nil, fmt.Errorf("unexpected reply type %d to request type %d", rawType, msgType)
	}
	return reply, nil
}

// Workspaces returns the current workspace list (GET_WORKSPACES).
func (c *Client) Workspaces() ([]Workspace, error) {
	reply, err := c.roundTrip(MessageGetWorkspaces, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}

	var workspaces []Workspace
	if err := json.Unmarshal(reply, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces reply: %w", err)
	}
	return workspaces, nil
}

// Outputs returns the current output list (GET_OUTPUTS).
func (c *Client) Outputs() ([]Output, error) {
	reply, err := c.roundTrip(MessageGetOutputs, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query outputs: %w", err)
	}

	var outputs []Output
	if err := json.Unmarshal(reply, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse outputs reply: %w", err)
	}
	return outputs, nil
}

type subscribeReply struct {
	Success bool `json:"success"`
}

// Subscribe registers this connection for the given event classes. After a
// successful Subscribe the connection carries event frames and must only be
// read through NextWorkspaceEvent.
func (c *Client) Subscribe(events ...string) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal subscription: %w", err)
	}

	reply, err := c.roundTrip(MessageSubscribe, payload)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	var result subscribeReply
	if err := json.Unmarshal(reply, &result); err != nil {
		return fmt.Errorf("failed to parse subscribe reply: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("i3 rejected subscription to %v", events)
	}
	return nil
}

// NextWorkspaceEvent blocks until the next workspace event arrives. Frames
// of other subscribed event classes are skipped; a non-event frame on a
// subscribed connection is a protocol violation and returns an error.
func (c *Client) NextWorkspaceEvent() (*WorkspaceEvent, error) {
	for {
		rawType, payload, err := readMessage(c.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		if !isEvent(rawType) {
			return nil, fmt.Errorf("unexpected reply frame (type %d) on event connection", rawType)
		}
		if eventType(rawType) != EventWorkspace {
			continue
		}

		var event WorkspaceEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("failed to parse workspace event: %w", err)
		}
		return &event, nil
	}
}
