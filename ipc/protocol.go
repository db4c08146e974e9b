package ipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// The i3/sway IPC framing: a 6-byte magic string followed by a native-endian
// payload length and message type, then the JSON payload.
const magic = "i3-ipc"

const headerSize = len(magic) + 8

// Message types used by swipectl. The protocol defines more; only the
// command and version calls are needed here.
const (
	messageRunCommand uint32 = 0
	messageGetVersion uint32 = 7
)

// CommandOutcome is the per-sub-command result of a RUN_COMMAND reply.
type CommandOutcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Version is the GET_VERSION reply.
type Version struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	HumanReadable string `json:"human_readable"`
}

func writeMessage(w io.Writer, msgType uint32, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	binary.LittleEndian.PutUint32(buf[len(magic):], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[len(magic)+4:], msgType)
	copy(buf[headerSize:], payload)

	_, err := w.Write(buf)
	return err
}

func readMessage(r io.Reader) (uint32, []byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, err
	}

	if string(header[:len(magic)]) != magic {
		return 0, nil, fmt.Errorf("invalid magic string in reply header")
	}

	length := binary.LittleEndian.Uint32(header[len(magic):])
	msgType := binary.LittleEndian.Uint32(header[len(magic)+4:])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}

	return msgType, payload, nil
}
