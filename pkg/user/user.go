// Package user holds the domain model for authenticated users.
package user

import "time"

// User represents the domain model for an authenticated wallet user.
// Exactly one record exists per address: the first successful sign-in creates
// it, later sign-ins reuse it.
type User struct {
	ID        int64
	Address   string
	Username  *string
	CreatedAt time.Time
}
