package bubblehub_test

import (
	"momentmap/backend/internal/models"
)

// MockClient is a test double for the bubblehub.Client interface. Its
// receive channel is buffered so hub broadcasts never block in tests.
type MockClient struct {
	connID   string
	userID   string
	nickname string
	closed   bool

	Recv chan models.Event
}

func newMockClient(id string) *MockClient {
	return &MockClient{
		connID: id,
		Recv:   make(chan models.Event, 32),
	}
}

func (c *MockClient) GetConnID() string   { return c.connID }
func (c *MockClient) GetNickname() string { return c.nickname }

func (c *MockClient) SetUser(userID, nickname string) {
	c.userID = userID
	c.nickname = nickname
}

func (c *MockClient) GetSendChannel() chan<- models.Event { return c.Recv }

func (c *MockClient) Run()   {}
func (c *MockClient) Close() { c.closed = true }

// drain returns every event received so far, in delivery order.
func (c *MockClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.Recv:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// onlineCounts extracts the counts from the onlineCount events in evs,
// preserving order.
func onlineCounts(evs []models.Event) []int {
	var counts []int
	for _, ev := range evs {
		if ev.Type == models.EventOnlineCount {
			counts = append(counts, ev.Payload.(models.OnlineCountPayload).Count)
		}
	}
	return counts
}

// eventsOfType filters evs down to one event type.
func eventsOfType(evs []models.Event, t models.EventType) []models.Event {
	var out []models.Event
	for _, ev := range evs {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
