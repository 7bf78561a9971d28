package model

import "time"

// User is a reporter profile, keyed by email. Items reference users only
// through their contact identifier (email or phone).
type User struct {
	CreatedAt time.Time
	Email     string
	Name      string
	Phone     string
	Campus    string
}
