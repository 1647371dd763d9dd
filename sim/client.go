package sim

// Client is a mobile receiver (a vehicle in the highway scenario).
// The core only reads the two collaborator-written signals: whether the
// client currently has a server, and whether its downlink is interfered.
// Position, speed and lifecycle belong to the world collaborator.
type Client struct {
	ID string

	// Server is the agent currently serving this client, nil if unclaimed.
	// Written only by the serving agent's Associate/Drop transitions.
	Server *Agent

	// Interfered is true when at least one other active transmitter also
	// covers this client. Written by the interference synthesis pass each
	// epoch; read-only to the association policies.
	Interfered bool
}

// Unclaimed reports whether no agent is serving this client.
func (c *Client) Unclaimed() bool {
	return c.Server == nil
}

// ServedBy reports whether this client is currently served by agent a.
func (c *Client) ServedBy(a *Agent) bool {
	return c.Server == a
}
