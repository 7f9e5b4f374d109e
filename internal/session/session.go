// Package session implements the per-connection WebSocket signalling
// handler: it spawns the reader/writer halves of one socket session,
// registers the writer with the SignallingBridge, translates inbound
// frames into RoomCommands, and emits a Disconnect on teardown
// regardless of which half failed first.
package session

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/antenna-rt/antenna/internal/bridge"
	"github.com/antenna-rt/antenna/internal/manager"
	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
	"github.com/antenna-rt/antenna/internal/room"
)

// Handler wires a WebSocket connection to a RoomManager and a
// SignallingBridge.
type Handler struct {
	manager *manager.Manager
	bridge  *bridge.Bridge
}

// New constructs a Handler.
func New(mgr *manager.Manager, br *bridge.Bridge) *Handler {
	return &Handler{manager: mgr, bridge: br}
}

// Handle drives one socket session to completion. It returns once
// either half has stopped: if the writer stops first, the connection is
// closed and the reader awaited; if the reader stops first, the sink is
// closed and the writer is not awaited — the deferred conn.Close ends
// any write still in progress.
func (h *Handler) Handle(conn *websocket.Conn, peerID peer.ID) {
	defer conn.Close()

	sink := newWriterSink()
	h.bridge.Register(peerID, sink)
	defer h.bridge.Unregister(peerID)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		sink.run(conn)
	}()

	// Push IceConfig immediately so the client can configure its local
	// transport before it sends an Offer.
	if err := sink.Send(peer.Frame{
		Op: peer.OpIceConfig,
		D:  peer.IceConfigPayload{IceServers: h.bridge.IceServers()},
	}); err != nil {
		obs.LogWarning("push IceConfig to peer %s failed: %v", peerID, err)
	}

	readerDone := make(chan struct{})
	var currentRoom chan<- room.Command
	go func() {
		defer close(readerDone)
		currentRoomPtr := &currentRoom
		h.readLoop(conn, peerID, sink, currentRoomPtr)
	}()

	select {
	case <-writerDone:
		// Closing the connection unblocks the reader's in-flight read,
		// standing in for cancellation of the other half: Go has no
		// goroutine abort, so tearing down the shared resource is how
		// the reader is made to stop.
		conn.Close()
		<-readerDone
	case <-readerDone:
	}

	sink.close()

	if currentRoom != nil {
		select {
		case currentRoom <- room.Disconnect(peerID):
		default:
			obs.LogWarning("disconnect for peer %s dropped: room command queue full", peerID)
		}
	}
}

// readLoop decodes inbound frames and dispatches them until the socket
// closes or an unrecoverable read error occurs. *currentRoom points at the
// session's currently selected room so the outer Handle can emit a
// Disconnect to it on teardown.
func (h *Handler) readLoop(conn *websocket.Conn, peerID peer.ID, sink *writerSink, currentRoom *chan<- room.Command) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		op, payload, err := decodeFrame(data)
		if err != nil {
			obs.LogWarning("malformed signal frame from peer %s: %v", peerID, err)
			continue
		}

		switch op {
		case peer.OpJoin:
			var join peer.JoinPayload
			if err := json.Unmarshal(payload, &join); err != nil {
				obs.LogWarning("malformed Join from peer %s: %v", peerID, err)
				continue
			}
			*currentRoom = h.manager.GetRoomSender(peer.RoomID(join.Room))
			if err := sink.Send(peer.Frame{Op: peer.OpWelcome, D: peer.WelcomePayload{PeerID: peerID.String()}}); err != nil {
				obs.LogWarning("push Welcome to peer %s failed: %v", peerID, err)
			}

		case peer.OpOffer:
			if *currentRoom == nil {
				obs.LogWarning("Offer from peer %s before Join, ignored", peerID)
				continue
			}
			var offer peer.SDPPayload
			if err := json.Unmarshal(payload, &offer); err != nil {
				obs.LogWarning("malformed Offer from peer %s: %v", peerID, err)
				continue
			}
			select {
			case *currentRoom <- room.JoinRequest(peerID, offer.SDP):
			default:
				obs.LogWarning("room command queue full for peer %s, closing session", peerID)
				return
			}

		case peer.OpIceCandidate:
			if *currentRoom == nil {
				continue
			}
			var ice peer.IceCandidatePayload
			if err := json.Unmarshal(payload, &ice); err != nil {
				obs.LogWarning("malformed IceCandidate from peer %s: %v", peerID, err)
				continue
			}
			select {
			case *currentRoom <- room.IceCandidateCommand(peerID, ice.Candidate):
			default:
				obs.LogWarning("ICE candidate for peer %s dropped: room command queue full", peerID)
			}

		case peer.OpAnswer, peer.OpWelcome, peer.OpIceConfig:
			// Client never sends these; ignored.

		default:
			obs.LogWarning("unknown signal op %q from peer %s", op, peerID)
		}
	}
}
