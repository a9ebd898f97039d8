package i3

import (
	"encoding/binary"
	"fmt"
	"io"
)

// i3 frames every IPC message the same way in both directions: a 6-byte
// magic string, a 32-bit little-endian payload length, a 32-bit
// little-endian message type, then the JSON payload.
const magic = "i3-ipc"

const headerSize = len(magic) + 8

// MessageType identifies a request and its matching reply.
type MessageType uint32

const (
	MessageGetWorkspaces MessageType = 1
	MessageSubscribe     MessageType = 2
	MessageGetOutputs    MessageType = 3
)

// Frames that announce an event set the high bit of the type field; the
// remaining bits identify the event class.
const eventFlag = uint32(0x80000000)

// EventType identifies an asynchronous event pushed by i3.
type EventType uint32

const EventWorkspace EventType = 0

func isEvent(rawType uint32) bool {
	return rawType&eventFlag != 0
}

func eventType(rawType uint32) EventType {
	return EventType(rawType &^ eventFlag)
}

// writeMessage frames and sends a single message.
func writeMessage(w io.Writer, msgType MessageType, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[len(magic):], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[len(magic)+4:], uint32(msgType))
	copy(buf[headerSize:], payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// readMessage reads a single framed message. The returned type is raw: for
// event frames it still carries the event flag.
func readMessage(r io.Reader) (uint32, []byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("failed to read message header: %w", err)
	}
	if string(header[:len(magic)]) != magic {
		return 0, nil, fmt.Errorf("bad magic %q in message header", header[:len(magic)])
	}

	length := binary.LittleEndian.Uint32(header[len(magic):])
	rawType := binary.LittleEndian.Uint32(header[len(magic)+4:])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("failed to read message payload: %w", err)
	}
	return rawType, payload, nil
}
