package domain

import "time"

// MonthlyBucket is one month of the dashboard histogram.
type MonthlyBucket struct {
	Month        time.Time
	Events       int
	RevenueCents int
}

type StockLevel string

const (
	StockLevelLow    StockLevel = "low"
	StockLevelMedium StockLevel = "medium"
)

// StockAlert pairs a low-running item with its severity bucket.
type StockAlert struct {
	Item  Item
	Level StockLevel
}
