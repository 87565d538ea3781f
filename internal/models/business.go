package models

import (
	"fmt"

	"pedidos_directos/internal/money"
)

// VariantSpec describes a single-select option on a catalog item,
// e.g. a size with choices ["Chica", "Grande"].
type VariantSpec struct {
	Type    string   `json:"type"`
	Label   string   `json:"label,omitempty"`
	Choices []string `json:"choices"`
}

// IsSelect reports whether the spec is a usable single-select option.
func (v *VariantSpec) IsSelect() bool {
	return v != nil && v.Type == "select" && len(v.Choices) > 0
}

// Offers reports whether choice is one of the spec's choices.
func (v *VariantSpec) Offers(choice string) bool {
	if !v.IsSelect() {
		return false
	}
	for _, c := range v.Choices {
		if c == choice {
			return true
		}
	}
	return false
}

// Item is one sellable catalog entry.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Price       money.Cents  `json:"price"`
	Description string       `json:"description,omitempty"`
	Options     *VariantSpec `json:"options,omitempty"`
}

// Business is the catalog document for one storefront, immutable once loaded.
type Business struct {
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle,omitempty"`
	WhatsApp  string `json:"whatsapp_e164"`
	HeroImage string `json:"hero_image,omitempty"`
	Items     []Item `json:"items"`
}

// Normalize fills in defaults the catalog document may omit: items
// without an id get a positional fallback so cart keys stay stable
// for the session.
func (b *Business) Normalize() {
	for i := range b.Items {
		if b.Items[i].ID == "" {
			b.Items[i].ID = fmt.Sprintf("item_%d", i)
		}
	}
}

// ItemByID returns the catalog item with the given id.
func (b *Business) ItemByID(id string) (Item, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
