package room

import "github.com/antenna-rt/antenna/internal/peer"

// DataChannelSink is the outbound half of a peer's data channel once it
// is open. Send must be safe to call concurrently with itself; two
// sends issued from the same logical task complete in issue order on
// the wire.
type DataChannelSink interface {
	Send(data []byte) error
}

// PeerTransport is the opaque handle the room holds per peer: a
// closable transport plus (once ready) the outbound data-channel sink.
type PeerTransport interface {
	// SetRemoteOffer applies the client's SDP as the remote offer.
	SetRemoteOffer(sdp string) error
	// CreateAnswer generates a local SDP answer, sets it as the local
	// description, and returns the answer SDP text.
	CreateAnswer() (string, error)
	// AddRemoteICE parses and adds one remote ICE candidate.
	AddRemoteICE(candidateJSON string) error
	// Close terminates the transport. Safe to call more than once.
	Close() error
}

// EventSink is the send-only handle a transport is given at
// construction time so it can push events at a room without holding a
// back-reference to the Room itself.
type EventSink interface {
	DataChannelReady(peerID peer.ID, sink DataChannelSink)
	Message(peerID peer.ID, data []byte)
	Disconnected(peerID peer.ID)
	CandidateGenerated(peerID peer.ID, candidateJSON string)
}

// Adapter creates a PeerTransport for one peer, wired to fire events
// into sink. Implemented concretely in internal/transportadapter
// against pion/webrtc; a room never imports that package directly —
// it only depends on this interface.
type Adapter interface {
	Create(peerID peer.ID, iceServers []peer.IceServerConfig, sink EventSink) (PeerTransport, error)
}
