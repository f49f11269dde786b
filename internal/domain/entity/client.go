package entity

import "time"

// Client representa el cliente (organización) dueño de uno o varios benchmarks.
type Client struct {
	ID           string
	Name         string
	ContactName  string
	ContactEmail string
	Website      string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
