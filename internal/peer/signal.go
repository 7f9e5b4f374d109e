package peer

// FrameOp discriminates the signalling wire union.
type FrameOp string

const (
	OpIceConfig    FrameOp = "IceConfig"
	OpJoin         FrameOp = "Join"
	OpWelcome      FrameOp = "Welcome"
	OpOffer        FrameOp = "Offer"
	OpAnswer       FrameOp = "Answer"
	OpIceCandidate FrameOp = "IceCandidate"
)

// Frame is the envelope every signalling message travels in: a
// discriminator plus an op-specific payload.
type Frame struct {
	Op FrameOp `json:"op"`
	D  any     `json:"d"`
}

// IceServerConfig mirrors an RTCIceServer entry. Immutable once a room
// has been configured with it.
type IceServerConfig struct {
	URLs       []string `json:"urls"`
	Username   string   `json:"username,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

// IceConfigPayload is the S->C payload pushed once per session right
// after the socket opens.
type IceConfigPayload struct {
	IceServers []IceServerConfig `json:"ice_servers"`
}

// JoinPayload is the C->S payload selecting/creating a room.
type JoinPayload struct {
	Room  string `json:"room"`
	Token string `json:"token,omitempty"`
}

// WelcomePayload acknowledges a Join, echoing the peer id from the path.
type WelcomePayload struct {
	PeerID string `json:"peer_id"`
}

// SDPPayload carries an SDP offer or answer.
type SDPPayload struct {
	SDP string `json:"sdp"`
}

// IceCandidatePayload carries one trickled ICE candidate. SdpMid and
// SdpMLineIndex are left unset by the server and so omitted from the
// JSON; the candidate string
// itself is whatever the transport's standard JSON serialisation
// produced.
type IceCandidatePayload struct {
	Candidate     string `json:"candidate"`
	SdpMid        string `json:"sdp_mid,omitempty"`
	SdpMLineIndex *int   `json:"sdp_m_line_index,omitempty"`
}
