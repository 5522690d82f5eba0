package domain

import "time"

// User is the minimal projection of an account owned by the external
// identity provider. The core only stores the foreign key on donations and
// reads this record for display.
type User struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
