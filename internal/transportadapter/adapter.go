package transportadapter

import (
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
	"github.com/antenna-rt/antenna/internal/room"
)

// Adapter is the pion-backed implementation of room.Adapter. It holds
// no per-peer state itself — every peer gets its own transport
// instance from Create.
type Adapter struct{}

// New returns a ready-to-use Adapter.
func New() *Adapter { return &Adapter{} }

// Create builds a PeerConnection with a single pre-negotiated
// DataChannel for peerID, wiring its callbacks to emit events into
// sink.
func (Adapter) Create(peerID peer.ID, iceServers []peer.IceServerConfig, sink room.EventSink) (room.PeerTransport, error) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{
		ICEServers: toICEServers(iceServers),
	})
	if err != nil {
		return nil, fmt.Errorf("new peer connection: %w", err)
	}

	ordered := true
	dc, err := pc.CreateDataChannel(dataChannelLabel, &webrtc.DataChannelInit{Ordered: &ordered})
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("create data channel: %w", err)
	}

	t := &transport{pc: pc, dc: dc, peerID: peerID, sink: sink}
	t.wire()
	return t, nil
}

// transport is one peer's PeerConnection + DataChannel, implementing
// room.PeerTransport. Its lifecycle is reported to the room entirely
// through Disconnected events (one per Failed, Disconnected or Closed
// transition) — the room never polls connection state directly.
type transport struct {
	pc     *webrtc.PeerConnection
	dc     *webrtc.DataChannel
	peerID peer.ID
	sink   room.EventSink

	closed bool
}

// wire registers every pion callback this adapter's contract promises:
// one CandidateGenerated per local ICE candidate, one DataChannelReady
// on open, one Message per inbound payload, and exactly one
// Disconnected on any terminal PeerConnection transition.
func (t *transport) wire() {
	t.pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return // nil candidate marks end-of-gathering, not a real candidate
		}
		data, err := jsonMarshalCandidate(c)
		if err != nil {
			obs.LogWarning("marshal ICE candidate for peer %s failed: %v", t.peerID, err)
			return
		}
		t.sink.CandidateGenerated(t.peerID, data)
	})

	t.dc.OnOpen(func() {
		t.sink.DataChannelReady(t.peerID, dataChannelSink{dc: t.dc})
	})

	t.dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		t.sink.Message(t.peerID, msg.Data)
	})

	t.pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		switch state {
		case webrtc.PeerConnectionStateFailed, webrtc.PeerConnectionStateDisconnected, webrtc.PeerConnectionStateClosed:
			t.sink.Disconnected(t.peerID)
		}
	})
}

func (t *transport) SetRemoteOffer(sdp string) error {
	return t.pc.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  sdp,
	})
}

func (t *transport) CreateAnswer() (string, error) {
	answer, err := t.pc.CreateAnswer(nil)
	if err != nil {
		return "", fmt.Errorf("create answer: %w", err)
	}
	if err := t.pc.SetLocalDescription(answer); err != nil {
		return "", fmt.Errorf("set local description: %w", err)
	}
	return answer.SDP, nil
}

func (t *transport) AddRemoteICE(candidateJSON string) error {
	init, err := unmarshalCandidate(candidateJSON)
	if err != nil {
		return fmt.Errorf("parse ICE candidate: %w", err)
	}
	return t.pc.AddICECandidate(init)
}

func (t *transport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.pc.Close()
}

// dataChannelSink adapts *webrtc.DataChannel to room.DataChannelSink.
type dataChannelSink struct {
	dc *webrtc.DataChannel
}

func (s dataChannelSink) Send(data []byte) error {
	return s.dc.Send(data)
}
