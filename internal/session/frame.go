package session

import (
	"encoding/json"
	"fmt"

	"github.com/antenna-rt/antenna/internal/peer"
)

// rawFrame is the wire shape before the payload is dispatched to its
// op-specific struct.
type rawFrame struct {
	Op peer.FrameOp    `json:"op"`
	D  json.RawMessage `json:"d"`
}

func decodeFrame(data []byte) (peer.FrameOp, json.RawMessage, error) {
	var raw rawFrame
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", nil, fmt.Errorf("decode signal frame: %w", err)
	}
	return raw.Op, raw.D, nil
}

func encodeFrame(op peer.FrameOp, payload any) ([]byte, error) {
	return json.Marshal(peer.Frame{Op: op, D: payload})
}
