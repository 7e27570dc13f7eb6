package domain

import "time"

// Item is a rentable inventory unit with a finite countable quantity.
// AvailableQuantity is mutated only by reservation (decrement) and
// fulfillment (restitution) and never goes below zero.
type Item struct {
	ID                string
	Name              string
	Category          string
	UnitPriceCents    int
	AvailableQuantity int
	TrackStock        bool
	CreatedAt         time.Time
}
