package model

// GuestID is the special identity that bypasses every habilitation check.
// It is handed out when authentication is disabled for trusted public
// integrations.
const GuestID = "GUEST"

// Caller is the identity resolved once per request by the auth middleware.
// Token carries the raw bearer token so habilitation checks can forward it.
type Caller struct {
	ID    string
	Token string
}

func (c *Caller) IsGuest() bool { return c.ID == GuestID }

// Guest returns the guest caller.
func Guest() *Caller { return &Caller{ID: GuestID} }
