package domain

import "fmt"

// Address is a value object embedded in Customer. It has no identity of its
// own: two addresses are the same address exactly when all four fields match,
// which Go's struct comparison gives us for free.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// FullAddress renders the address as a single display line.
func (a Address) FullAddress() string {
	return fmt.Sprintf("%s, %s %s, %s", a.Street, a.City, a.PostalCode, a.Country)
}
