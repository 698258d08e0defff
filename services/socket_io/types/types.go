package types

import (
	"fmt"
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer wraps the socket.io server plus the username -> connection map
type SocketServer struct {
	Sio_server      *socket.Server
	UserConnections map[string]*socket.Socket
	mu              sync.RWMutex
}

// MatchRoom is the room name every participant of a match joins
func MatchRoom(matchID string) socket.Room {
	return socket.Room(fmt.Sprintf("match:%s", matchID))
}

func (s *SocketServer) AddConnection(username string, client *socket.Socket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UserConnections[username] = client
}

func (s *SocketServer) RemoveConnection(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.UserConnections, username)
}

func (s *SocketServer) GetConnection(username string) (*socket.Socket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.UserConnections[username]
	return client, ok
}

// BroadcastToMatch emits an event to every client in a match room
func (s *SocketServer) BroadcastToMatch(matchID string, event string, payload interface{}) {
	if s == nil || s.Sio_server == nil {
		return
	}
	s.Sio_server.To(MatchRoom(matchID)).Emit(event, payload)
}
