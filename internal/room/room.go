// Package room implements the per-room actor: a single-writer state
// machine that owns per-peer transports, drives the join/offer/answer/
// ICE handshake to data-channel readiness, and delivers ordered
// behavior callbacks.
package room

import (
	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
)

// eventQueueCapacity is the recommended bound for a room's internal
// transport-event channel.
const eventQueueCapacity = 256

// record is the internal per-peer bookkeeping entry.
type record struct {
	transport PeerTransport
	active    bool // true once the data channel is ready
}

// Room is the per-room actor. Construct with New and drive it with
// Run, normally from its own goroutine.
type Room struct {
	behavior Behavior
	adapter  Adapter
	signal   SignallingOut
	iceCfg   []peer.IceServerConfig

	commands <-chan Command
	events   chan transportEvent

	sinks   *sinkMap
	records map[peer.ID]*record
}

// New constructs a non-started Room. commands is the inbound command
// queue (normally owned by a RoomManager); signal is the out-edge for
// SDP answers and ICE candidates.
func New(behavior Behavior, commands <-chan Command, signal SignallingOut, adapter Adapter, iceServers []peer.IceServerConfig) *Room {
	return &Room{
		behavior: behavior,
		adapter:  adapter,
		signal:   signal,
		iceCfg:   iceServers,
		commands: commands,
		events:   make(chan transportEvent, eventQueueCapacity),
		sinks:    newSinkMap(),
		records:  make(map[peer.ID]*record),
	}
}

// eventSink adapts Room.events into the EventSink interface handed to
// each peer's transport at construction, so the transport never holds
// a back-reference to the Room.
type eventSink struct {
	events chan<- transportEvent
}

func (s eventSink) DataChannelReady(peerID peer.ID, sink DataChannelSink) {
	s.events <- transportEvent{kind: evtDataChannelReady, peerID: peerID, sink: sink}
}
func (s eventSink) Message(peerID peer.ID, data []byte) {
	s.events <- transportEvent{kind: evtMessage, peerID: peerID, message: data}
}
func (s eventSink) Disconnected(peerID peer.ID) {
	s.events <- transportEvent{kind: evtDisconnected, peerID: peerID}
}
func (s eventSink) CandidateGenerated(peerID peer.ID, candidateJSON string) {
	s.events <- transportEvent{kind: evtCandidateGenerated, peerID: peerID, candidateJSON: candidateJSON}
}

// Run consumes the Room until its command channel closes. The two
// select arms below are mutually exclusive per iteration; this
// goroutine is the sole mutator of all Room state.
func (r *Room) Run() {
	obs.LogInfo("room event loop started")

	for {
		ctx := Context{sinks: r.sinks}

		select {
		case cmd, ok := <-r.commands:
			if !ok {
				obs.LogInfo("command channel closed, shutting down room")
				return
			}
			r.handleCommand(cmd)

		case evt, ok := <-r.events:
			if !ok {
				obs.LogWarning("internal transport-event channel closed unexpectedly")
				return
			}
			r.handleTransportEvent(evt, ctx)
		}
	}
}

func (r *Room) handleCommand(cmd Command) {
	switch cmd.Kind() {
	case CmdJoinRequest:
		r.handleJoinRequest(cmd.PeerID, cmd.OfferSDP)
	case CmdIceCandidate:
		r.handleIceCandidate(cmd.PeerID, cmd.Candidate)
	case CmdDisconnect:
		r.removePeerWithNotify(cmd.PeerID, Context{sinks: r.sinks})
	}
}

func (r *Room) handleJoinRequest(peerID peer.ID, offerSDP string) {
	if _, exists := r.records[peerID]; exists {
		// Silent replacement: a prior handshaking (inactive) record is
		// dropped without on_leave; an active one gets on_leave first.
		r.removePeerWithNotify(peerID, Context{sinks: r.sinks})
	}

	tr, err := r.adapter.Create(peerID, r.iceCfg, eventSink{events: r.events})
	if err != nil {
		obs.LogError("create transport for peer %s failed: %v", peerID, err)
		return
	}

	if err := tr.SetRemoteOffer(offerSDP); err != nil {
		obs.LogError("set remote offer for peer %s failed: %v", peerID, err)
		tr.Close()
		return
	}

	answerSDP, err := tr.CreateAnswer()
	if err != nil {
		obs.LogError("create answer for peer %s failed: %v", peerID, err)
		tr.Close()
		return
	}

	r.records[peerID] = &record{transport: tr}
	r.signal.SendAnswer(peerID, answerSDP)
}

func (r *Room) handleIceCandidate(peerID peer.ID, candidateJSON string) {
	rec, ok := r.records[peerID]
	if !ok {
		return
	}
	if err := rec.transport.AddRemoteICE(candidateJSON); err != nil {
		obs.LogWarning("add remote ICE candidate for peer %s failed: %v", peerID, err)
	}
}

func (r *Room) handleTransportEvent(evt transportEvent, ctx Context) {
	switch evt.kind {
	case evtDataChannelReady:
		rec, ok := r.records[evt.peerID]
		if !ok {
			return // late event for an unknown/removed peer; ignore
		}
		r.sinks.set(evt.peerID, evt.sink)
		rec.active = true
		obs.Stats.AddJoin()
		r.behavior.OnJoin(ctx, evt.peerID)

	case evtMessage:
		rec, ok := r.records[evt.peerID]
		if !ok || !rec.active {
			return // drop silently: no active record for this peer
		}
		obs.Stats.AddRecv(len(evt.message))
		r.behavior.OnMessage(ctx, evt.peerID, evt.message)

	case evtDisconnected:
		r.removePeerWithNotify(evt.peerID, ctx)

	case evtCandidateGenerated:
		r.signal.SendICE(evt.peerID, evt.candidateJSON)
	}
}

// removePeerWithNotify removes peerID and invokes OnLeave iff the
// removed record was active, guaranteeing at most one OnLeave per
// OnJoin.
func (r *Room) removePeerWithNotify(peerID peer.ID, ctx Context) {
	rec, ok := r.records[peerID]
	wasActive := ok && rec.active

	r.removePeer(peerID)

	if wasActive {
		obs.Stats.AddLeave()
		r.behavior.OnLeave(ctx, peerID)
	}
}

// removePeer tears down peerID's bookkeeping unconditionally. Safe to
// call when the peer is already absent (no-op).
func (r *Room) removePeer(peerID peer.ID) {
	r.sinks.delete(peerID)
	rec, ok := r.records[peerID]
	if !ok {
		return
	}
	delete(r.records, peerID)
	if err := rec.transport.Close(); err != nil {
		obs.LogWarning("close transport for peer %s: %v", peerID, err)
	}
}
