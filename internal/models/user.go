package models

// User represents a registered user of the map.
// One user exists per phone number; records are created on first login
// and never mutated afterwards.
type User struct {
	// ID is the unique identifier assigned by the directory
	// (timestamp plus random suffix).
	ID string `json:"id"`
	// Phone is the identity key: one user per phone.
	Phone string `json:"phone"`
	// Nickname is derived from the last 4 digits of the phone at creation.
	Nickname string `json:"nickname"`
	// Avatar is the display avatar, defaulted at creation.
	Avatar string `json:"avatar"`
	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
}
