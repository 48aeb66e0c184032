package bubblehub

import "momentmap/backend/internal/models"

// Client is the interface for any type of realtime connection. It
// abstracts the underlying transport so the hub can manage different
// client types uniformly and tests can substitute doubles.
type Client interface {
	// GetConnID returns the identifier of this connection. It is
	// assigned at upgrade time and never reused.
	GetConnID() string
	// GetNickname returns the display name bound to the connection,
	// or "" when the client never identified itself.
	GetNickname() string
	// SetUser binds a user identity to the connection. Called by the
	// hub on a userJoin command, or at upgrade time when the client
	// presented a valid session token.
	SetUser(userID, nickname string)

	// GetSendChannel returns the channel the hub pushes events
	// destined for this connection into. It is a send-only channel.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outgoing channel, which stops the
	// write pump and closes the transport.
	Close()
}
