// Package config holds the server's runtime configuration knobs.
package config

import (
	"flag"

	"github.com/antenna-rt/antenna/internal/peer"
)

// Config stores all parameters gathered from CLI flags at startup.
type Config struct {
	ListenAddr string // HTTP listen address, e.g. ":8080"
	IceServers []peer.IceServerConfig
	Debug      bool
}

// defaultIceServers is a STUN-only, zero-infrastructure default — the
// server may still be configured with its own TURN/STUN list via
// -ice-server, which then applies to every room.
var defaultIceServers = []peer.IceServerConfig{
	{URLs: []string{"stun:stun.l.google.com:19302"}},
	{URLs: []string{"stun:stun1.l.google.com:19302"}},
}

// Parse builds a Config from the given argument list (normally
// os.Args[1:]).
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("antennad", flag.ContinueOnError)

	addr := fs.String("addr", ":8080", "HTTP listen address")
	debug := fs.Bool("debug", false, "enable debug logging")
	var iceURLs stringSliceFlag
	fs.Var(&iceURLs, "ice-server", "STUN/TURN server URL (repeatable); defaults to public Google STUN")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ListenAddr: *addr,
		Debug:      *debug,
		IceServers: defaultIceServers,
	}
	if len(iceURLs) > 0 {
		cfg.IceServers = []peer.IceServerConfig{{URLs: iceURLs}}
	}
	return cfg, nil
}

// stringSliceFlag accumulates repeated -flag occurrences into a slice.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string { return "" }

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
