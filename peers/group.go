package peers

import (
	"fmt"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/mockserver"
)

// Group is a set of running peer servers that are stopped together.
type Group struct {
	names   []string
	servers map[string]*mockserver.Server
}

// Start starts a server for every peer in the configuration, in order. If any of them fails
// to start, the ones already started are closed and the error is returned.
//
// loggerFor, if not nil, supplies the logger for each peer; providers, if not nil, supplies a
// response provider for peers that need one.
func Start(
	config Config,
	loggerFor func(peerName string) framework.Logger,
	providers map[string]mockserver.ResponseProvider,
) (*Group, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	g := &Group{servers: make(map[string]*mockserver.Server)}
	for _, p := range config.Peers {
		serverConfig := config.ServerConfig(p)
		if loggerFor != nil {
			serverConfig.Logger = loggerFor(p.Name)
		}
		serverConfig.Provider = providers[p.Name]
		s, err := mockserver.Start(serverConfig)
		if err != nil {
			_ = g.Close()
			return nil, fmt.Errorf("could not start peer %q: %w", p.Name, err)
		}
		g.names = append(g.names, p.Name)
		g.servers[p.Name] = s
	}
	return g, nil
}

// Names returns the peer names in configuration order.
func (g *Group) Names() []string {
	return append([]string(nil), g.names...)
}

// Server returns the server for a peer, or nil if there is no such peer.
func (g *Group) Server(name string) *mockserver.Server {
	return g.servers[name]
}

// Close stops every server, in reverse order of starting, and returns the first error.
func (g *Group) Close() error {
	var firstErr error
	for i := len(g.names) - 1; i >= 0; i-- {
		if err := g.servers[g.names[i]].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
