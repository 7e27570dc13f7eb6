package domain

import "time"

// Client is the owner of bookings.
type Client struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
