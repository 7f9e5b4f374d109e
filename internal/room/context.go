package room

import (
	"sync"

	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
)

// sinkMap is the peer->data-channel-sink map shared between a Room and
// every Context handed to user logic. Only the Room inserts or
// removes entries; reads from Context are lock-free with respect to
// each other but synchronize through the mutex against the Room's
// writes.
type sinkMap struct {
	mu    sync.RWMutex
	sinks map[peer.ID]DataChannelSink
}

func newSinkMap() *sinkMap {
	return &sinkMap{sinks: make(map[peer.ID]DataChannelSink)}
}

func (m *sinkMap) set(id peer.ID, s DataChannelSink) {
	m.mu.Lock()
	m.sinks[id] = s
	m.mu.Unlock()
}

func (m *sinkMap) delete(id peer.ID) {
	m.mu.Lock()
	delete(m.sinks, id)
	m.mu.Unlock()
}

func (m *sinkMap) get(id peer.ID) (DataChannelSink, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sinks[id]
	return s, ok
}

// snapshot returns a point-in-time copy of the active peer set, used so
// Broadcast never holds the lock across a send.
func (m *sinkMap) snapshot() map[peer.ID]DataChannelSink {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[peer.ID]DataChannelSink, len(m.sinks))
	for k, v := range m.sinks {
		out[k] = v
	}
	return out
}

// Context is the capability surface handed to RoomBehavior hooks. It
// is cheap to clone — it only references the room's shared sink map —
// and is constructed anew for each event-loop iteration.
type Context struct {
	sinks *sinkMap
}

// Send writes data to peerID's data channel if it has one ready. If the
// peer is absent or its channel isn't open yet, the send is logged and
// dropped — no error surfaces to caller code, matching the transport's
// best-effort delivery contract.
func (c Context) Send(peerID peer.ID, data []byte) {
	sink, ok := c.sinks.get(peerID)
	if !ok {
		obs.LogWarning("send to unknown or inactive peer %s dropped", peerID)
		return
	}
	if err := sink.Send(data); err != nil {
		obs.LogError("send to peer %s failed: %v", peerID, err)
		return
	}
	obs.Stats.AddSent(len(data))
}

// Broadcast dispatches data to every currently-active peer. Delivery is
// independent per peer; a failure sending to one peer does not affect
// others. Ordering across peers is not guaranteed, and Broadcast does
// not synchronize with concurrent Send calls.
func (c Context) Broadcast(data []byte) {
	for id, sink := range c.sinks.snapshot() {
		go func(id peer.ID, sink DataChannelSink) {
			if err := sink.Send(data); err != nil {
				obs.LogError("broadcast to peer %s failed: %v", id, err)
				return
			}
			obs.Stats.AddSent(len(data))
		}(id, sink)
	}
}

// ListPeers returns a snapshot of the currently active peer ids.
func (c Context) ListPeers() []peer.ID {
	snap := c.sinks.snapshot()
	out := make([]peer.ID, 0, len(snap))
	for id := range snap {
		out = append(out, id)
	}
	return out
}

// Contains reports whether peerID currently has an active data channel.
func (c Context) Contains(peerID peer.ID) bool {
	_, ok := c.sinks.get(peerID)
	return ok
}
