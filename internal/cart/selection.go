package cart

import (
	"errors"

	"pedidos_directos/internal/models"
)

// ErrInvalidChoice is returned when a selection is not one of the
// item's offered choices.
var ErrInvalidChoice = errors.New("cart: choice not offered by item")

// VariantKey identifies one cart line: an item at a specific choice.
// A two-field key avoids the delimiter collisions a concatenated
// "id|choice" string would allow.
type VariantKey struct {
	ItemID string
	Choice string
}

// Selections tracks the currently selected choice per item id.
// Cart operations read it but never change it.
type Selections map[string]string

// DefaultSelections selects the first choice of every item that has
// a variant spec.
func DefaultSelections(items []models.Item) Selections {
	s := make(Selections)
	for _, it := range items {
		if it.Options.IsSelect() {
			s[it.ID] = it.Options.Choices[0]
		}
	}
	return s
}

// Resolve returns the selected choice for the item, or the empty
// string for items without variants.
func (s Selections) Resolve(item models.Item) string {
	if !item.Options.IsSelect() {
		return ""
	}
	if choice, ok := s[item.ID]; ok && choice != "" {
		return choice
	}
	return item.Options.Choices[0]
}

// Set replaces the item's selection. The choice must be offered by
// the item's variant spec.
func (s Selections) Set(item models.Item, choice string) error {
	if !item.Options.Offers(choice) {
		return ErrInvalidChoice
	}
	s[item.ID] = choice
	return nil
}

// Key derives the cart-line identity for the item at its current
// selection.
func (s Selections) Key(item models.Item) VariantKey {
	return VariantKey{ItemID: item.ID, Choice: s.Resolve(item)}
}
