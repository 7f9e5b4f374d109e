package room

import "github.com/antenna-rt/antenna/internal/peer"

// Behavior is user-supplied room logic. All three hooks are invoked
// exclusively from the Room actor's own goroutine and are awaited in
// turn, so their duration serializes further room progress —
// implementations that need long-running work must spawn it off.
type Behavior interface {
	// OnJoin fires at most once per peer, after its data channel becomes
	// writable.
	OnJoin(ctx Context, peerID peer.ID)
	// OnMessage fires zero or more times between a peer's OnJoin and
	// OnLeave, carrying the exact bytes it sent with no framing applied.
	OnMessage(ctx Context, peerID peer.ID, data []byte)
	// OnLeave fires at most once, only if OnJoin fired for that peer.
	OnLeave(ctx Context, peerID peer.ID)
}

// NoopBehavior is the default no-op Behavior; embed it to implement
// only the hooks you need.
type NoopBehavior struct{}

func (NoopBehavior) OnJoin(Context, peer.ID)            {}
func (NoopBehavior) OnMessage(Context, peer.ID, []byte) {}
func (NoopBehavior) OnLeave(Context, peer.ID)           {}

// SignallingOut is the out-edge a Room uses to push SDP answers and
// trickled ICE candidates back to a peer's socket. The concrete
// implementation lives in internal/bridge; a room depends only on
// this interface.
type SignallingOut interface {
	SendAnswer(peerID peer.ID, sdp string)
	SendICE(peerID peer.ID, candidateJSON string)
}
