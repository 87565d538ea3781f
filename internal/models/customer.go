package models

import "strings"

// Customer holds the free-text contact fields the visitor fills in.
// All fields are optional.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
}

// Normalized trims every field and keeps only digits in the phone.
func (c Customer) Normalized() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   DigitsOnly(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Note:    strings.TrimSpace(c.Note),
	}
}

// DigitsOnly strips everything but 0-9 from a phone-like string.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
