package bubblehub_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"momentmap/backend/internal/bubblehub"
	"momentmap/backend/internal/models"
)

// settle gives the hub goroutine time to process what was just sent.
const settle = 100 * time.Millisecond

func startHub() *bubblehub.ManagerService {
	hub := bubblehub.NewManagerService()
	go hub.Run()
	return hub
}

func TestRegisterBroadcastsOnlineCount(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	c := newMockClient("conn_c")

	hub.RegisterCh <- a
	time.Sleep(settle)
	hub.RegisterCh <- b
	time.Sleep(settle)
	hub.RegisterCh <- c
	time.Sleep(settle)

	assert.Contains(t, hub.Clients, "conn_a")
	assert.Contains(t, hub.Clients, "conn_b")
	assert.Contains(t, hub.Clients, "conn_c")

	// The first connection saw every count change, in order, including
	// the broadcast announcing itself.
	assert.Equal(t, []int{1, 2, 3}, onlineCounts(a.drain()))
	assert.Equal(t, []int{2, 3}, onlineCounts(b.drain()))
	assert.Equal(t, []int{3}, onlineCounts(c.drain()))
}

func TestUnregisterRebroadcastsCount(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	c := newMockClient("conn_c")
	for _, cl := range []*MockClient{a, b, c} {
		hub.RegisterCh <- cl
	}
	time.Sleep(settle)
	a.drain()
	b.drain()
	c.drain()

	hub.UnregisterCh <- c
	time.Sleep(settle)

	assert.NotContains(t, hub.Clients, "conn_c")
	assert.True(t, c.closed)
	assert.Equal(t, []int{2}, onlineCounts(a.drain()))
	assert.Equal(t, []int{2}, onlineCounts(b.drain()))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	hub.RegisterCh <- a
	time.Sleep(settle)

	hub.UnregisterCh <- a
	hub.UnregisterCh <- a
	time.Sleep(settle)

	assert.Empty(t, hub.Clients)

	// Unregistering a client that never registered is a no-op too.
	hub.UnregisterCh <- newMockClient("conn_ghost")
	time.Sleep(settle)
	assert.Empty(t, hub.Clients)
}

func TestJoinChatroomNotifiesRoomIncludingJoiner(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(settle)

	hub.IncomingCh <- models.Command{
		Type:   models.CommandUserJoin,
		ConnID: "conn_a",
		User:   &models.User{ID: "u1", Nickname: "alice"},
	}
	time.Sleep(settle)
	a.drain()
	b.drain()

	hub.IncomingCh <- models.Command{
		Type:       models.CommandJoinChatroom,
		ConnID:     "conn_a",
		ChatroomID: "R1",
	}
	time.Sleep(settle)

	joins := eventsOfType(a.drain(), models.EventChatroomUserJoined)
	assert.Len(t, joins, 1, "the joiner hears about its own join")
	payload := joins[0].Payload.(models.RoomJoinPayload)
	assert.Equal(t, "alice", payload.Nickname)
	assert.Positive(t, payload.Time)

	assert.Empty(t, b.drain(), "connections outside the room hear nothing")

	assert.Contains(t, hub.Rooms, "R1")
	assert.Contains(t, hub.Rooms["R1"], "conn_a")
}

func TestChatroomMessageFansOutToRoomOnly(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	outsider := newMockClient("conn_outsider")
	for _, cl := range []*MockClient{a, b, outsider} {
		hub.RegisterCh <- cl
	}
	time.Sleep(settle)

	hub.IncomingCh <- models.Command{
		Type:   models.CommandUserJoin,
		ConnID: "conn_a",
		User:   &models.User{ID: "u1", Nickname: "alice"},
	}
	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_a", ChatroomID: "R1"}
	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_b", ChatroomID: "R1"}
	time.Sleep(settle)
	a.drain()
	b.drain()
	outsider.drain()

	hub.IncomingCh <- models.Command{
		Type:       models.CommandChatroomMessage,
		ConnID:     "conn_a",
		ChatroomID: "R1",
		Message:    "hi",
	}
	time.Sleep(settle)

	for _, cl := range []*MockClient{a, b} {
		msgs := eventsOfType(cl.drain(), models.EventNewMessage)
		assert.Len(t, msgs, 1, "both room members receive the message")
		payload := msgs[0].Payload.(models.RoomMessagePayload)
		assert.Equal(t, "alice", payload.Nickname)
		assert.Equal(t, "hi", payload.Message)
		assert.Positive(t, payload.Time)
	}
	assert.Empty(t, outsider.drain(), "no delivery outside the room")
}

func TestChatroomMessageAnonymousFallback(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	hub.RegisterCh <- a
	time.Sleep(settle)

	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_a", ChatroomID: "R1"}
	time.Sleep(settle)
	a.drain()

	hub.IncomingCh <- models.Command{
		Type:       models.CommandChatroomMessage,
		ConnID:     "conn_a",
		ChatroomID: "R1",
		Message:    "hello?",
	}
	time.Sleep(settle)

	msgs := eventsOfType(a.drain(), models.EventNewMessage)
	assert.Len(t, msgs, 1)
	assert.Equal(t, "anonymous", msgs[0].Payload.(models.RoomMessagePayload).Nickname)
}

func TestLeaveChatroomIsSilent(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(settle)

	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_a", ChatroomID: "R1"}
	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_b", ChatroomID: "R1"}
	time.Sleep(settle)
	a.drain()
	b.drain()

	hub.IncomingCh <- models.Command{Type: models.CommandLeaveChatroom, ConnID: "conn_b", ChatroomID: "R1"}
	time.Sleep(settle)

	assert.Empty(t, a.drain(), "leaving broadcasts nothing")
	assert.Empty(t, b.drain())
	assert.NotContains(t, hub.Rooms["R1"], "conn_b")

	// Messages no longer reach the connection that left.
	hub.IncomingCh <- models.Command{
		Type:       models.CommandChatroomMessage,
		ConnID:     "conn_a",
		ChatroomID: "R1",
		Message:    "still here?",
	}
	time.Sleep(settle)
	assert.Len(t, eventsOfType(a.drain(), models.EventNewMessage), 1)
	assert.Empty(t, b.drain())
}

func TestMessageToEmptyRoomIsNoOp(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	hub.RegisterCh <- a
	time.Sleep(settle)
	a.drain()

	hub.IncomingCh <- models.Command{
		Type:       models.CommandChatroomMessage,
		ConnID:     "conn_a",
		ChatroomID: "R_empty",
		Message:    "echo",
	}
	time.Sleep(settle)

	assert.Empty(t, a.drain(), "sender is not in the room either")
}

func TestDisconnectClearsRoomMembership(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(settle)

	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_a", ChatroomID: "R1"}
	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_a", ChatroomID: "R2"}
	hub.IncomingCh <- models.Command{Type: models.CommandJoinChatroom, ConnID: "conn_b", ChatroomID: "R1"}
	time.Sleep(settle)

	hub.UnregisterCh <- a
	time.Sleep(settle)

	assert.NotContains(t, hub.Rooms["R1"], "conn_a")
	assert.NotContains(t, hub.Rooms, "R2", "a room with no members left ceases to exist")
	assert.Contains(t, hub.Rooms["R1"], "conn_b")
}

func TestPublishGlobalReachesEveryConnection(t *testing.T) {
	hub := startHub()

	a := newMockClient("conn_a")
	b := newMockClient("conn_b")
	hub.RegisterCh <- a
	hub.RegisterCh <- b
	time.Sleep(settle)
	a.drain()
	b.drain()

	bubble := models.Bubble{ID: "bubble_1", Title: "free pizza", Duration: 60}
	hub.PublishGlobal(models.Event{Type: models.EventNewBubble, Payload: bubble})
	time.Sleep(settle)

	for _, cl := range []*MockClient{a, b} {
		evs := eventsOfType(cl.drain(), models.EventNewBubble)
		assert.Len(t, evs, 1)
		assert.Equal(t, bubble, evs[0].Payload.(models.Bubble))
	}
}

func TestSlowConnectionIsSkippedNotBlockedOn(t *testing.T) {
	hub := startHub()

	slow := newMockClient("conn_slow")
	slow.Recv = make(chan models.Event) // no buffer, nobody reading
	hub.RegisterCh <- slow
	time.Sleep(settle)

	// The broadcast to the full channel must not wedge the hub.
	ok := newMockClient("conn_ok")
	hub.RegisterCh <- ok
	time.Sleep(settle)

	assert.Contains(t, hub.Clients, "conn_ok")
	assert.Equal(t, []int{2}, onlineCounts(ok.drain()))
}
