// Package transportadapter implements room.Adapter on top of
// pion/webrtc: it creates one PeerConnection + pre-negotiated
// DataChannel pair per peer, performs the SDP/ICE exchange methods the
// Room calls, and fires events into the room's EventSink without ever
// holding a reference back to the Room.
package transportadapter

import (
	"github.com/pion/webrtc/v4"

	"github.com/antenna-rt/antenna/internal/peer"
)

// dataChannelLabel is the single DataChannel every peer transport
// negotiates; the room treats its payloads as opaque bytes.
const dataChannelLabel = "antenna"

// toICEServers converts the room's configured ICE servers into pion's
// webrtc.ICEServer form.
func toICEServers(cfg []peer.IceServerConfig) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(cfg))
	for _, c := range cfg {
		out = append(out, webrtc.ICEServer{
			URLs:       c.URLs,
			Username:   c.Username,
			Credential: c.Credential,
		})
	}
	return out
}
