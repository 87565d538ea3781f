package models

import "pedidos_directos/internal/money"

// CartLine is one aggregated order row: a catalog item at a specific
// variant choice with a positive quantity.
type CartLine struct {
	ItemID    string      `json:"item_id"`
	Name      string      `json:"name"`
	Option    string      `json:"option,omitempty"`
	UnitPrice money.Cents `json:"unit_price"`
	Quantity  int         `json:"quantity"`
}

// OptionSuffix is the display suffix for the selected variant,
// " (Grande)" when an option is set and empty otherwise.
func (l CartLine) OptionSuffix() string {
	if l.Option == "" {
		return ""
	}
	return " (" + l.Option + ")"
}

// Subtotal is quantity times unit price.
func (l CartLine) Subtotal() money.Cents {
	return money.Cents(l.Quantity) * l.UnitPrice
}
