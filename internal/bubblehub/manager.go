// Package bubblehub is the realtime core of the service: it tracks the
// set of connected clients, their chatroom memberships, and fans
// events out globally or per room. All hub state is owned by the
// single goroutine running ManagerService.Run, which is what
// serializes concurrent joins, leaves, messages and disconnects.
package bubblehub

import (
	"log"
	"time"

	"momentmap/backend/internal/models"
)

// anonymousNickname is used for room messages from connections that
// never identified themselves.
const anonymousNickname = "anonymous"

// ManagerService is the presence hub. Clients, Rooms and the
// per-connection membership index must only be touched from the Run
// goroutine; everything else talks to the hub over the channels.
type ManagerService struct {
	// Clients maps connection id to the connected client.
	Clients map[string]Client
	// Rooms maps room id to the set of member connection ids. A room
	// exists exactly as long as it has members.
	Rooms map[string]map[string]struct{}

	// joined is the inverse index: connection id to the set of rooms
	// it is in. Kept in sync with Rooms on every join/leave/unregister.
	joined map[string]map[string]struct{}

	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan models.Command
	PublishCh    chan models.Event
}

// NewManagerService returns a hub ready to Run.
func NewManagerService() *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		Rooms:        make(map[string]map[string]struct{}),
		joined:       make(map[string]map[string]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan models.Command),
		PublishCh:    make(chan models.Event),
	}
}

// Run is the hub dispatcher. Start it once, as its own goroutine.
func (m *ManagerService) Run() {
	for {
		select {
		case c := <-m.RegisterCh:
			m.register(c)
		case c := <-m.UnregisterCh:
			m.unregister(c)
		case cmd := <-m.IncomingCh:
			m.dispatch(cmd)
		case ev := <-m.PublishCh:
			m.broadcastGlobal(ev)
		}
	}
}

// PublishGlobal delivers an event to every connected client. Safe to
// call from any goroutine; per-connection delivery order follows call
// order.
func (m *ManagerService) PublishGlobal(ev models.Event) {
	m.PublishCh <- ev
}

func (m *ManagerService) register(c Client) {
	m.Clients[c.GetConnID()] = c
	log.Printf("connection %s registered, online: %d", c.GetConnID(), len(m.Clients))
	m.broadcastGlobal(models.Event{
		Type:    models.EventOnlineCount,
		Payload: models.OnlineCountPayload{Count: len(m.Clients)},
	})
}

func (m *ManagerService) unregister(c Client) {
	connID := c.GetConnID()
	if _, ok := m.Clients[connID]; !ok {
		// Already gone; disconnect is idempotent.
		return
	}

	for roomID := range m.joined[connID] {
		m.removeFromRoom(connID, roomID)
	}
	delete(m.joined, connID)
	delete(m.Clients, connID)
	c.Close()

	log.Printf("connection %s unregistered, online: %d", connID, len(m.Clients))
	m.broadcastGlobal(models.Event{
		Type:    models.EventOnlineCount,
		Payload: models.OnlineCountPayload{Count: len(m.Clients)},
	})
}

func (m *ManagerService) dispatch(cmd models.Command) {
	c, ok := m.Clients[cmd.ConnID]
	if !ok {
		// Connection disappeared between the read pump and here.
		return
	}

	switch cmd.Type {
	case models.CommandUserJoin:
		if cmd.User != nil {
			c.SetUser(cmd.User.ID, cmd.User.Nickname)
			log.Printf("connection %s identified as %s", cmd.ConnID, cmd.User.Nickname)
		}

	case models.CommandJoinChatroom:
		if cmd.ChatroomID == "" {
			return
		}
		m.addToRoom(cmd.ConnID, cmd.ChatroomID)
		// The joiner is already a member at this point, so it receives
		// the event about itself too.
		m.broadcastToRoom(cmd.ChatroomID, models.Event{
			Type: models.EventChatroomUserJoined,
			Payload: models.RoomJoinPayload{
				Nickname: m.nicknameFor(c),
				Time:     time.Now().UnixMilli(),
			},
		})

	case models.CommandChatroomMessage:
		m.broadcastToRoom(cmd.ChatroomID, models.Event{
			Type: models.EventNewMessage,
			Payload: models.RoomMessagePayload{
				Nickname: m.nicknameFor(c),
				Message:  cmd.Message,
				Time:     time.Now().UnixMilli(),
			},
		})

	case models.CommandLeaveChatroom:
		// No "left" broadcast, asymmetric with join on purpose.
		m.removeFromRoom(cmd.ConnID, cmd.ChatroomID)
		delete(m.joined[cmd.ConnID], cmd.ChatroomID)

	default:
		log.Printf("unknown command %q from connection %s", cmd.Type, cmd.ConnID)
	}
}

func (m *ManagerService) addToRoom(connID, roomID string) {
	members, ok := m.Rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		m.Rooms[roomID] = members
	}
	members[connID] = struct{}{}

	rooms, ok := m.joined[connID]
	if !ok {
		rooms = make(map[string]struct{})
		m.joined[connID] = rooms
	}
	rooms[roomID] = struct{}{}
}

// removeFromRoom drops the connection from the room->members index
// only. Callers maintain the joined index themselves, because
// unregister iterates over it.
func (m *ManagerService) removeFromRoom(connID, roomID string) {
	members, ok := m.Rooms[roomID]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(m.Rooms, roomID)
	}
}

func (m *ManagerService) broadcastGlobal(ev models.Event) {
	for _, c := range m.Clients {
		m.send(c, ev)
	}
}

// broadcastToRoom delivers to current room members only. A room with
// no members is a silent no-op.
func (m *ManagerService) broadcastToRoom(roomID string, ev models.Event) {
	for connID := range m.Rooms[roomID] {
		if c, ok := m.Clients[connID]; ok {
			m.send(c, ev)
		}
	}
}

// send never blocks the hub: a client whose buffer is full simply
// misses the event. Its read pump will unregister it if the connection
// is actually dead.
func (m *ManagerService) send(c Client, ev models.Event) {
	select {
	case c.GetSendChannel() <- ev:
	default:
		log.Printf("dropping %s event for slow connection %s", ev.Type, c.GetConnID())
	}
}

func (m *ManagerService) nicknameFor(c Client) string {
	if n := c.GetNickname(); n != "" {
		return n
	}
	return anonymousNickname
}
