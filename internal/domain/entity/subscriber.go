package entity

import "time"

// Subscriber is a mailing-list record created by the subscribe form.
type Subscriber struct {
	Email     string
	FirstName string
	Source    string
	UserAgent string
	IPAddress string
	Verified  bool
	CreatedAt time.Time
}
