package room_test

import (
	"errors"
	"sync"

	"github.com/antenna-rt/antenna/internal/peer"
	"github.com/antenna-rt/antenna/internal/room"
)

// Sentinel errors a test can queue onto a mockAdapter to force one of
// the three TransportSetupError rollback paths in handleJoinRequest.
var (
	errMockCreate = errors.New("mock: create transport failed")
	errMockOffer  = errors.New("mock: set remote offer failed")
	errMockAnswer = errors.New("mock: create answer failed")
)

// Compile-time interface checks.
var (
	_ room.Adapter         = (*mockAdapter)(nil)
	_ room.PeerTransport   = (*mockTransport)(nil)
	_ room.DataChannelSink = (*mockSink)(nil)
	_ room.SignallingOut   = (*mockSignal)(nil)
	_ room.Behavior        = (*mockBehavior)(nil)
)

// mockAdapter hands out mockTransports and lets a test script each
// peer's next answer SDP or force a creation-step error.
type mockAdapter struct {
	mu sync.Mutex

	nextAnswer map[peer.ID][]string // queued answers, popped per Create
	createErr  map[peer.ID]error
	offerErr   map[peer.ID]error
	answerErr  map[peer.ID]error
	created    []*mockTransport
}

func newMockAdapter() *mockAdapter {
	return &mockAdapter{
		nextAnswer: make(map[peer.ID][]string),
		createErr:  make(map[peer.ID]error),
		offerErr:   make(map[peer.ID]error),
		answerErr:  make(map[peer.ID]error),
	}
}

func (m *mockAdapter) queueAnswer(id peer.ID, sdp string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAnswer[id] = append(m.nextAnswer[id], sdp)
}

// queueCreateErr makes the next Create for id fail with err instead of
// handing out a transport.
func (m *mockAdapter) queueCreateErr(id peer.ID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErr[id] = err
}

// queueOfferErr makes the next transport created for id fail
// SetRemoteOffer with err.
func (m *mockAdapter) queueOfferErr(id peer.ID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offerErr[id] = err
}

// queueAnswerErr makes the next transport created for id fail
// CreateAnswer with err.
func (m *mockAdapter) queueAnswerErr(id peer.ID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answerErr[id] = err
}

func (m *mockAdapter) Create(id peer.ID, _ []peer.IceServerConfig, sink room.EventSink) (room.PeerTransport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.createErr[id]; err != nil {
		delete(m.createErr, id)
		return nil, err
	}

	answer := "<ANSWER>"
	if queue := m.nextAnswer[id]; len(queue) > 0 {
		answer = queue[0]
		m.nextAnswer[id] = queue[1:]
	}

	t := &mockTransport{
		peerID:    id,
		sink:      sink,
		answerSDP: answer,
		offerErr:  m.offerErr[id],
		answerErr: m.answerErr[id],
	}
	delete(m.offerErr, id)
	delete(m.answerErr, id)
	m.created = append(m.created, t)
	return t, nil
}

// mockTransport is a room.PeerTransport a test drives directly: it
// records every ICE candidate handed to AddRemoteICE and reports
// whether Close was called, then fires events by calling back into the
// EventSink it was constructed with, exactly as a real adapter would.
type mockTransport struct {
	mu sync.Mutex

	peerID    peer.ID
	sink      room.EventSink
	answerSDP string
	offerErr  error
	answerErr error

	iceAdds []string
	closed  bool
}

func (t *mockTransport) SetRemoteOffer(string) error { return t.offerErr }

func (t *mockTransport) CreateAnswer() (string, error) {
	if t.answerErr != nil {
		return "", t.answerErr
	}
	return t.answerSDP, nil
}

func (t *mockTransport) AddRemoteICE(candidate string) error {
	t.mu.Lock()
	t.iceAdds = append(t.iceAdds, candidate)
	t.mu.Unlock()
	return nil
}

func (t *mockTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

func (t *mockTransport) wasClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *mockTransport) iceHistory() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.iceAdds))
	copy(out, t.iceAdds)
	return out
}

// fireReady simulates the data channel opening.
func (t *mockTransport) fireReady(sink *mockSink) {
	t.sink.DataChannelReady(t.peerID, sink)
}

// fireMessage simulates one inbound data-channel message.
func (t *mockTransport) fireMessage(data []byte) {
	t.sink.Message(t.peerID, data)
}

// fireDisconnected simulates a fatal transport transition.
func (t *mockTransport) fireDisconnected() {
	t.sink.Disconnected(t.peerID)
}

// fireCandidate simulates one locally gathered ICE candidate.
func (t *mockTransport) fireCandidate(candidateJSON string) {
	t.sink.CandidateGenerated(t.peerID, candidateJSON)
}

// mockSink is a room.DataChannelSink that records every payload it was
// asked to send.
type mockSink struct {
	mu  sync.Mutex
	out [][]byte
	err error
}

func (s *mockSink) Send(data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.out = append(s.out, append([]byte(nil), data...))
	s.mu.Unlock()
	return nil
}

func (s *mockSink) sent() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.out))
	copy(out, s.out)
	return out
}

// signalEvent records one bridge call in arrival order.
type signalEvent struct {
	kind      string // "answer" | "ice"
	peerID    peer.ID
	sdp       string
	candidate string
}

// mockSignal is a room.SignallingOut that streams every call onto a
// channel so a test can block on the next one instead of sleeping.
type mockSignal struct {
	events chan signalEvent
}

func newMockSignal() *mockSignal {
	return &mockSignal{events: make(chan signalEvent, 256)}
}

func (s *mockSignal) SendAnswer(peerID peer.ID, sdp string) {
	s.events <- signalEvent{kind: "answer", peerID: peerID, sdp: sdp}
}

func (s *mockSignal) SendICE(peerID peer.ID, candidateJSON string) {
	s.events <- signalEvent{kind: "ice", peerID: peerID, candidate: candidateJSON}
}

// behaviorEvent records one RoomBehavior callback in arrival order.
type behaviorEvent struct {
	kind   string // "join" | "message" | "leave"
	peerID peer.ID
	data   []byte
}

// mockBehavior streams every hook invocation onto a channel.
type mockBehavior struct {
	events chan behaviorEvent
}

func newMockBehavior() *mockBehavior {
	return &mockBehavior{events: make(chan behaviorEvent, 256)}
}

func (b *mockBehavior) OnJoin(_ room.Context, peerID peer.ID) {
	b.events <- behaviorEvent{kind: "join", peerID: peerID}
}

func (b *mockBehavior) OnMessage(_ room.Context, peerID peer.ID, data []byte) {
	b.events <- behaviorEvent{kind: "message", peerID: peerID, data: append([]byte(nil), data...)}
}

func (b *mockBehavior) OnLeave(_ room.Context, peerID peer.ID) {
	b.events <- behaviorEvent{kind: "leave", peerID: peerID}
}
