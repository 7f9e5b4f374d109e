package room

import "github.com/antenna-rt/antenna/internal/peer"

// Command is the tagged union of instructions the signalling front-end
// sends into a room's single command queue.
type Command struct {
	kind commandKind

	PeerID   peer.ID
	OfferSDP string // JoinRequest
	Candidate string // IceCandidate
}

type commandKind int

const (
	CmdJoinRequest commandKind = iota
	CmdIceCandidate
	CmdDisconnect
)

// Kind reports which variant this Command carries.
func (c Command) Kind() commandKind { return c.kind }

// JoinRequest asks the room to begin the handshake for peerID using the
// client's SDP offer.
func JoinRequest(peerID peer.ID, offerSDP string) Command {
	return Command{kind: CmdJoinRequest, PeerID: peerID, OfferSDP: offerSDP}
}

// IceCandidateCommand forwards one trickled remote candidate to the room.
func IceCandidateCommand(peerID peer.ID, candidate string) Command {
	return Command{kind: CmdIceCandidate, PeerID: peerID, Candidate: candidate}
}

// Disconnect tells the room the peer's socket session ended.
func Disconnect(peerID peer.ID) Command {
	return Command{kind: CmdDisconnect, PeerID: peerID}
}

// transportEvent is the tagged union fed back into a room from every
// peer's transport callbacks, multiplexed onto one internal channel.
type transportEvent struct {
	kind eventKind

	peerID        peer.ID
	sink          DataChannelSink
	message       []byte
	candidateJSON string
}

type eventKind int

const (
	evtDataChannelReady eventKind = iota
	evtMessage
	evtDisconnected
	evtCandidateGenerated
)
