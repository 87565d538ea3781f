package session

import (
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"pedidos_directos/internal/cart"
	"pedidos_directos/internal/models"
)

// ErrItemNotFound means a command referenced an item id the loaded
// catalog does not contain.
var ErrItemNotFound = errors.New("session: item not found in catalog")

// Session is the per-visitor order-building state: the loaded catalog,
// the variant selections, the cart and the customer fields. It lives
// for one page session and is never persisted beyond its TTL.
type Session struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Business   models.Business `json:"business"`
	Selections cart.Selections `json:"selections"`
	Cart       *cart.Ledger    `json:"cart"`
	Customer   models.Customer `json:"customer"`

	// LastOrderNumber is the token returned by the most recent
	// successful submission. Any mutation clears it: the logged
	// record no longer matches what the visitor is about to send.
	LastOrderNumber string `json:"last_order_number,omitempty"`

	// Revision increases on every mutation so an in-flight send can
	// tell whether its snapshot is still current.
	Revision uint64 `json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a session for a loaded business with default selections
// and an empty cart.
func New(slug string, biz models.Business) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         ulid.Make().String(),
		Slug:       slug,
		Business:   biz,
		Selections: cart.DefaultSelections(biz.Items),
		Cart:       cart.NewLedger(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *Session) touch() {
	s.Revision++
	s.LastOrderNumber = ""
	s.UpdatedAt = time.Now().UTC()
}

// Increment adds one unit of the item at its current selection.
func (s *Session) Increment(itemID string) error {
	item, ok := s.Business.ItemByID(itemID)
	if !ok {
		return ErrItemNotFound
	}
	s.Cart.Increment(item, s.Selections)
	s.touch()
	return nil
}

// Decrement removes one unit of the item at its current selection.
// Decrementing a line that does not exist is a no-op, not a mutation.
func (s *Session) Decrement(itemID string) error {
	item, ok := s.Business.ItemByID(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if s.Cart.Decrement(item, s.Selections) {
		s.touch()
	}
	return nil
}

// SelectOption changes the item's selected choice. Lines already in
// the cart keep their original choice; the next increment opens a new
// line under the new one.
func (s *Session) SelectOption(itemID, choice string) error {
	item, ok := s.Business.ItemByID(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if err := s.Selections.Set(item, choice); err != nil {
		return err
	}
	s.touch()
	return nil
}

// SetCustomer replaces the customer fields.
func (s *Session) SetCustomer(c models.Customer) {
	if s.Customer == c {
		return
	}
	s.Customer = c
	s.touch()
}

// RecordOrderNumber stores a freshly obtained order number without
// counting as a mutation.
func (s *Session) RecordOrderNumber(number string) {
	s.LastOrderNumber = number
	s.UpdatedAt = time.Now().UTC()
}
