package handler_test

import "momentmap/backend/internal/models"

// stubClient satisfies bubblehub.Client so handler tests can observe
// hub fan-out without a real websocket.
type stubClient struct {
	connID   string
	nickname string
	recv     chan models.Event
}

func newStubClient(id string) *stubClient {
	return &stubClient{connID: id, recv: make(chan models.Event, 32)}
}

func (c *stubClient) GetConnID() string                      { return c.connID }
func (c *stubClient) GetNickname() string                    { return c.nickname }
func (c *stubClient) SetUser(userID, nickname string)        { c.nickname = nickname }
func (c *stubClient) GetSendChannel() chan<- models.Event    { return c.recv }
func (c *stubClient) Run()                                   {}
func (c *stubClient) Close()                                 {}

func (c *stubClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.recv:
			events = append(events, ev)
		default:
			return events
		}
	}
}
