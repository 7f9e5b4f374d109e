package obs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// ──────────────────────────────────────────────────────────────────────────────
// Global stats singleton
// ──────────────────────────────────────────────────────────────────────────────

// Stats is the process-wide room/peer/traffic counter.
var Stats = &stats{}

type stats struct {
	RoomsCreated atomic.Int64 // cumulative count of rooms instantiated
	PeersJoined  atomic.Int64 // cumulative count of on_join deliveries
	PeersLeft    atomic.Int64 // cumulative count of on_leave deliveries
	BytesSent    atomic.Int64 // cumulative bytes written to peer data channels
	BytesRecv    atomic.Int64 // cumulative bytes read from peer data channels
}

func (s *stats) AddRoom()      { s.RoomsCreated.Add(1) }
func (s *stats) AddJoin()      { s.PeersJoined.Add(1) }
func (s *stats) AddLeave()     { s.PeersLeft.Add(1) }
func (s *stats) AddSent(n int) { s.BytesSent.Add(int64(n)) }
func (s *stats) AddRecv(n int) { s.BytesRecv.Add(int64(n)) }

// ──────────────────────────────────────────────────────────────────────────────
// Periodic reporter
// ──────────────────────────────────────────────────────────────────────────────

// StartStatsReporter launches a goroutine that logs runtime statistics
// every 10 seconds. It stops when ctx is cancelled.
func StartStatsReporter(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()

		var prevSent, prevRecv, prevJoined, prevLeft int64
		for {
			select {
			case <-ticker.C:
				joined := Stats.PeersJoined.Load()
				left := Stats.PeersLeft.Load()
				sent := Stats.BytesSent.Load()
				recv := Stats.BytesRecv.Load()

				inS := float64(sent-prevSent) / 10.0
				outS := float64(recv-prevRecv) / 10.0
				inC := joined - prevJoined
				outC := left - prevLeft

				if inC > 0 || outC > 0 || inS > 10 || outS > 10 {
					pterm.DefaultLogger.Info(formatStats(inS, outS, inC, outC))
				}

				prevSent = sent
				prevRecv = recv
				prevJoined = joined
				prevLeft = left

			case <-ctx.Done():
				return
			}
		}
	}()
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// formatBytes formats a byte count into a human-readable, fixed-width
// (8 char) string, e.g. "99.0   B", " 1.5 KiB", " 0.1 MiB".
func formatBytes(b float64) string {
	unitIdx := 0
	for b > 99 && unitIdx < 5 {
		b /= 1024
		unitIdx++
	}
	return fmt.Sprintf("%4.1f %3s", b, byteUnits[unitIdx])
}

func formatStats(inS, outS float64, inC, outC int64) string {
	return fmt.Sprintf("Out: %s/s | In: %s/s | Join: %2d↑ %2d↓",
		formatBytes(inS),
		formatBytes(outS),
		inC,
		outC,
	)
}
