package entity

import "time"

// User is a debt-collection agent (bailiff, legal associate, firm admin...).
// Username doubles as the login name: the credentials table of earlier schema
// revisions was merged into users and password verification removed on purpose.
type User struct {
	ID        string // UUID
	Username  string // unique login name
	Name      string
	Email     string
	Role      string // free-form label: "bailiff", "legal associate", ...
	CreatedAt time.Time
}
