package domain

import "time"

// Prices are integers in the smallest currency unit.

type MenuItem struct {
	ID        string
	Name      string
	Price     int64
	Available bool
	Category  string
	CreatedAt time.Time
}

type Addon struct {
	ID        string
	Name      string
	Price     int64
	Available bool
	CreatedAt time.Time
}
