package transportadapter

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
)

// jsonMarshalCandidate encodes a gathered local candidate using pion's
// standard single-candidate JSON form, via json.Marshal(c.ToJSON()).
func jsonMarshalCandidate(c *webrtc.ICECandidate) (string, error) {
	data, err := json.Marshal(c.ToJSON())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalCandidate parses the wire candidate-JSON payload back into
// the form pion's AddICECandidate expects.
func unmarshalCandidate(candidateJSON string) (webrtc.ICECandidateInit, error) {
	var init webrtc.ICECandidateInit
	err := json.Unmarshal([]byte(candidateJSON), &init)
	return init, err
}
