// Package model defines domain entities for the application.
package model

import "time"

// User is an account in the credential store. Users are seeded once at
// startup and never modified afterwards; there is no registration endpoint.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PinHash   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
