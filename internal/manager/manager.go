// Package manager implements the RoomManager: a name->room-command-sink
// map with lazy first-use creation, spawning a fresh Room and a fresh
// user-logic instance on first reference to a room id.
package manager

import (
	"sync"

	"github.com/antenna-rt/antenna/internal/obs"
	"github.com/antenna-rt/antenna/internal/peer"
	"github.com/antenna-rt/antenna/internal/room"
)

// commandQueueCapacity is the recommended bound for a room's inbound
// command channel.
const commandQueueCapacity = 100

// BehaviorFactory produces a fresh Behavior instance per room.
type BehaviorFactory func() room.Behavior

// Manager lazily instantiates rooms by name. Safe for concurrent use.
type Manager struct {
	factory    BehaviorFactory
	signal     room.SignallingOut
	adapter    room.Adapter
	iceServers []peer.IceServerConfig

	mu    sync.RWMutex
	rooms map[peer.RoomID]chan<- room.Command
}

// New constructs a Manager. factory produces a fresh Behavior per room;
// signal is the bridge every spawned Room uses for outbound signalling.
func New(factory BehaviorFactory, signal room.SignallingOut, adapter room.Adapter, iceServers []peer.IceServerConfig) *Manager {
	return &Manager{
		factory:    factory,
		signal:     signal,
		adapter:    adapter,
		iceServers: iceServers,
		rooms:      make(map[peer.RoomID]chan<- room.Command),
	}
}

// GetRoomSender looks up roomID's command sink, creating the room on
// first reference. Reads take the fast (RLock) path; a miss falls
// through to a write-locked double-check, so two concurrent first
// references can both reach the construction step — the second to
// acquire the write lock discovers the first already won, discards its
// own freshly built Room (never started) and closes that Room's command
// channel, and returns the winner's sender instead.
func (m *Manager) GetRoomSender(roomID peer.RoomID) chan<- room.Command {
	m.mu.RLock()
	sender, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if ok {
		return sender
	}

	behavior := m.factory()
	commands := make(chan room.Command, commandQueueCapacity)
	r := room.New(behavior, commands, m.signal, m.adapter, m.iceServers)

	m.mu.Lock()
	if sender, ok := m.rooms[roomID]; ok {
		m.mu.Unlock()
		close(commands) // abandoned: someone else won the race to create roomID
		return sender
	}

	obs.LogInfo("creating room %q", roomID)
	obs.Stats.AddRoom()
	m.rooms[roomID] = commands
	m.mu.Unlock()

	go r.Run()
	return commands
}
