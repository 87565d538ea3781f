package cart

import (
	"encoding/json"

	"pedidos_directos/internal/models"
	"pedidos_directos/internal/money"
)

// Ledger aggregates cart lines keyed by variant. The same item added
// under two different choices produces two independent lines. Lines
// with quantity zero are never stored.
type Ledger struct {
	lines map[VariantKey]*models.CartLine
	order []VariantKey
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{lines: make(map[VariantKey]*models.CartLine)}
}

// Increment adds one unit of the item at its current selection,
// creating the line on first add with the item's current price.
func (l *Ledger) Increment(item models.Item, sel Selections) {
	key := sel.Key(item)
	line, ok := l.lines[key]
	if !ok {
		line = &models.CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Option:    key.Choice,
			UnitPrice: item.Price,
		}
		l.lines[key] = line
		l.order = append(l.order, key)
	}
	line.Quantity++
}

// Decrement removes one unit of the item at its current selection and
// reports whether the cart changed. Absent lines are a no-op; a line
// reaching zero is deleted.
func (l *Ledger) Decrement(item models.Item, sel Selections) bool {
	key := sel.Key(item)
	line, ok := l.lines[key]
	if !ok {
		return false
	}
	line.Quantity--
	if line.Quantity <= 0 {
		l.remove(key)
	}
	return true
}

func (l *Ledger) remove(key VariantKey) {
	delete(l.lines, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// Quantity returns the current quantity for a variant key, zero when
// the line does not exist.
func (l *Ledger) Quantity(key VariantKey) int {
	if line, ok := l.lines[key]; ok {
		return line.Quantity
	}
	return 0
}

// Lines snapshots the cart in first-insertion order.
func (l *Ledger) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, *l.lines[key])
	}
	return out
}

// Total sums quantity times unit price over all lines.
func (l *Ledger) Total() money.Cents {
	var total money.Cents
	for _, key := range l.order {
		total += l.lines[key].Subtotal()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (l *Ledger) Empty() bool {
	return len(l.order) == 0
}

// MarshalJSON serializes the ledger as its ordered lines so sessions
// survive a round trip through the session store.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Lines())
}

// UnmarshalJSON rebuilds the keyed mapping from stored lines.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	l.lines = make(map[VariantKey]*models.CartLine, len(lines))
	l.order = l.order[:0]
	for i := range lines {
		line := lines[i]
		if line.Quantity <= 0 {
			continue
		}
		key := VariantKey{ItemID: line.ItemID, Choice: line.Option}
		l.lines[key] = &line
		l.order = append(l.order, key)
	}
	return nil
}
