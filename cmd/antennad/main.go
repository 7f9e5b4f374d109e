// Command antennad runs the antenna room server: it upgrades incoming
// WebSocket connections for signalling and multiplexes peers across
// rooms driven by the echo sample Behavior below. Real deployments
// supply their own room.Behavior via manager.New instead.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/antenna-rt/antenna/internal/bridge"
	"github.com/antenna-rt/antenna/internal/config"
	"github.com/antenna-rt/antenna/internal/manager"
	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
	"github.com/antenna-rt/antenna/internal/room"
	"github.com/antenna-rt/antenna/internal/session"
	"github.com/antenna-rt/antenna/internal/transportadapter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // no CORS/auth policy enforced here
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		obs.LogError("parse config: %v", err)
		os.Exit(1)
	}
	if cfg.Debug {
		obs.EnableDebug()
	}

	br := bridge.New(cfg.IceServers)
	mgr := manager.New(func() room.Behavior { return echoBehavior{} }, br, transportadapter.New(), cfg.IceServers)
	handler := session.New(mgr, br)

	mux := http.NewServeMux()
	mux.HandleFunc("/signal/", func(w http.ResponseWriter, r *http.Request) {
		idStr := r.URL.Path[len("/signal/"):]
		peerID, err := peer.ParseID(idStr)
		if err != nil {
			http.Error(w, "malformed peer id", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		go handler.Handle(conn, peerID)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	obs.StartStatsReporter(ctx)

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║              antenna room server          ║")
	fmt.Println("╚══════════════════════════════════════════╝")
	fmt.Println()
	obs.LogSuccess("listening on %s", cfg.ListenAddr)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		obs.LogError("server exited: %v", err)
		os.Exit(1)
	}
}

// echoBehavior is a minimal sample room.Behavior: it logs each join
// with the current peer count and broadcasts every message to the whole
// room. Real deployments implement their own.
type echoBehavior struct {
	room.NoopBehavior
}

func (echoBehavior) OnJoin(ctx room.Context, peerID peer.ID) {
	obs.LogInfo("peer %s joined (%d peers now present)", peerID, len(ctx.ListPeers()))
}

func (echoBehavior) OnMessage(ctx room.Context, peerID peer.ID, data []byte) {
	ctx.Broadcast(data)
}

func (echoBehavior) OnLeave(ctx room.Context, peerID peer.ID) {
	obs.LogInfo("peer %s left", peerID)
}
