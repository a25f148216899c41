package model

import "github.com/shopspring/decimal"

// Vehicle is a read-only catalog entry.
type Vehicle struct {
	ID        string
	Make      string
	Model     string
	Year      int
	Trim      string
	BasePrice decimal.Decimal
	ImageURL  string
}

// Dealership is a read-only directory entry.
type Dealership struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string
	ZipCode string
	Phone   string
	Email   string
}
