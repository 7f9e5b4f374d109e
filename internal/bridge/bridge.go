// Package bridge implements the SignallingBridge: the out-edge a Room
// uses to push SDP answers and trickled ICE candidates back to the
// correct peer's socket writer, plus the room's ICE-server
// configuration returned to clients on connect.
package bridge

import (
	"sync"

	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
)

// WriterSink is the single-producer handle a socket session registers
// under its peer id; the bridge enqueues outbound frames onto it.
type WriterSink interface {
	Send(frame peer.Frame) error
}

// Bridge maps peer ids to their socket session's writer sink. Any
// socket session may insert/remove its own entry; rooms only read
// through SendAnswer/SendICE.
type Bridge struct {
	iceServers []peer.IceServerConfig

	mu      sync.RWMutex
	writers map[peer.ID]WriterSink
}

// New constructs an empty Bridge configured with the given ICE
// servers.
func New(iceServers []peer.IceServerConfig) *Bridge {
	return &Bridge{
		iceServers: iceServers,
		writers:    make(map[peer.ID]WriterSink),
	}
}

// Register inserts writer under peerID, replacing any prior entry —
// relevant for a late duplicate registration from a rejoining socket.
func (b *Bridge) Register(peerID peer.ID, writer WriterSink) {
	b.mu.Lock()
	b.writers[peerID] = writer
	b.mu.Unlock()
}

// Unregister removes peerID's entry. No-op if absent.
func (b *Bridge) Unregister(peerID peer.ID) {
	b.mu.Lock()
	delete(b.writers, peerID)
	b.mu.Unlock()
}

// SendAnswer serialises an Answer frame and enqueues it to peerID's
// writer. Warns and drops if the peer has no registered writer.
func (b *Bridge) SendAnswer(peerID peer.ID, sdp string) {
	b.send(peerID, peer.Frame{Op: peer.OpAnswer, D: peer.SDPPayload{SDP: sdp}})
}

// SendICE serialises an IceCandidate frame (with sdp_mid and
// sdp_m_line_index left unset, so omitted) and enqueues it to peerID's
// writer.
func (b *Bridge) SendICE(peerID peer.ID, candidateJSON string) {
	b.send(peerID, peer.Frame{
		Op: peer.OpIceCandidate,
		D:  peer.IceCandidatePayload{Candidate: candidateJSON},
	})
}

func (b *Bridge) send(peerID peer.ID, frame peer.Frame) {
	b.mu.RLock()
	writer, ok := b.writers[peerID]
	b.mu.RUnlock()

	if !ok {
		obs.LogWarning("signal for disconnected peer %s dropped", peerID)
		return
	}
	if err := writer.Send(frame); err != nil {
		obs.LogWarning("signal write to peer %s failed: %v", peerID, err)
	}
}

// IceServers returns a copy of the configured ICE servers, for the
// initial IceConfig push.
func (b *Bridge) IceServers() []peer.IceServerConfig {
	out := make([]peer.IceServerConfig, len(b.iceServers))
	for i, s := range b.iceServers {
		out[i] = s
		out[i].URLs = append([]string(nil), s.URLs...)
	}
	return out
}
