package session

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/antenna-rt/antenna/internal/peer"
)

// writerSink is the single-producer-unbounded sink a session registers
// with the bridge under its peer id. Frames enqueued here are written
// to the socket, in enqueue order, by one dedicated writer goroutine.
// Send never blocks and never drops a frame, matching an unbounded
// mpsc channel: the queue grows to hold whatever is pending.
type writerSink struct {
	mu     sync.Mutex
	queue  []peer.Frame
	closed bool
	notify chan struct{}
}

func newWriterSink() *writerSink {
	return &writerSink{notify: make(chan struct{}, 1)}
}

// Send implements bridge.WriterSink.
func (w *writerSink) Send(frame peer.Frame) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return errWriterSinkClosed
	}
	w.queue = append(w.queue, frame)
	w.mu.Unlock()
	w.wake()
	return nil
}

func (w *writerSink) wake() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// run drains frames onto conn, in enqueue order, until closed and
// empty or a write fails. It is the sink's sole writer.
func (w *writerSink) run(conn *websocket.Conn) {
	for {
		frame, ok := w.next()
		if !ok {
			return
		}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

// next blocks until a frame is available or the sink is closed with an
// empty queue, in which case it reports ok=false.
func (w *writerSink) next() (peer.Frame, bool) {
	for {
		w.mu.Lock()
		if len(w.queue) > 0 {
			frame := w.queue[0]
			w.queue = w.queue[1:]
			w.mu.Unlock()
			return frame, true
		}
		if w.closed {
			w.mu.Unlock()
			return peer.Frame{}, false
		}
		w.mu.Unlock()
		<-w.notify
	}
}

// close stops accepting further frames. Safe to call once the reader
// and writer goroutines have both been told to stop. Frames already
// queued are still drained by run before it returns.
func (w *writerSink) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.wake()
}
