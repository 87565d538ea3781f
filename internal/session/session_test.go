package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos_directos/internal/cart"
	"pedidos_directos/internal/models"
)

func testBusiness() models.Business {
	return models.Business{
		Name:     "Tacos El Paso",
		WhatsApp: "5215512345678",
		Items: []models.Item{
			{ID: "taco", Name: "Taco", Price: 1500},
			{ID: "soda", Name: "Soda", Price: 2500, Options: &models.VariantSpec{
				Type:    "select",
				Choices: []string{"Chica", "Grande"},
			}},
		},
	}
}

func TestNewSessionDefaults(t *testing.T) {
	sess := New("tacos", testBusiness())

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "tacos", sess.Slug)
	assert.True(t, sess.Cart.Empty())
	assert.Equal(t, "Chica", sess.Selections["soda"])
}

func TestSessionIncrementUnknownItem(t *testing.T) {
	sess := New("tacos", testBusiness())
	assert.ErrorIs(t, sess.Increment("burrito"), ErrItemNotFound)
}

func TestMutationsClearOrderNumber(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Session) error
	}{
		{"increment", func(s *Session) error { return s.Increment("taco") }},
		{"decrement", func(s *Session) error { return s.Decrement("taco") }},
		{"selection", func(s *Session) error { return s.SelectOption("soda", "Grande") }},
		{"customer", func(s *Session) error { s.SetCustomer(models.Customer{Name: "Ana"}); return nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := New("tacos", testBusiness())
			require.NoError(t, sess.Increment("taco"))
			sess.RecordOrderNumber("42")
			require.Equal(t, "42", sess.LastOrderNumber)

			before := sess.Revision
			require.NoError(t, tc.mutate(sess))
			assert.Empty(t, sess.LastOrderNumber)
			assert.Greater(t, sess.Revision, before)
		})
	}
}

func TestDecrementAbsentLineIsNotAMutation(t *testing.T) {
	sess := New("tacos", testBusiness())
	require.NoError(t, sess.Increment("taco"))
	sess.RecordOrderNumber("42")

	before := sess.Revision
	require.NoError(t, sess.Decrement("soda"))

	assert.Equal(t, "42", sess.LastOrderNumber)
	assert.Equal(t, before, sess.Revision)
}

func TestSetCustomerSameValueIsNotAMutation(t *testing.T) {
	sess := New("tacos", testBusiness())
	sess.SetCustomer(models.Customer{Name: "Ana"})
	sess.RecordOrderNumber("42")

	before := sess.Revision
	sess.SetCustomer(models.Customer{Name: "Ana"})

	assert.Equal(t, "42", sess.LastOrderNumber)
	assert.Equal(t, before, sess.Revision)
}

func TestRecordOrderNumberIsNotAMutation(t *testing.T) {
	sess := New("tacos", testBusiness())
	require.NoError(t, sess.Increment("taco"))

	before := sess.Revision
	sess.RecordOrderNumber("42")
	assert.Equal(t, before, sess.Revision)
}

func TestSessionJSONRoundTrip(t *testing.T) {
	sess := New("tacos", testBusiness())
	require.NoError(t, sess.Increment("soda"))
	require.NoError(t, sess.SelectOption("soda", "Grande"))
	require.NoError(t, sess.Increment("soda"))
	sess.SetCustomer(models.Customer{Name: "Ana", Note: "Sin hielo"})

	data, err := json.Marshal(sess)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, sess.ID, restored.ID)
	assert.Equal(t, sess.Cart.Lines(), restored.Cart.Lines())
	assert.Equal(t, sess.Customer, restored.Customer)
	assert.Equal(t, "Grande", restored.Selections["soda"])
	assert.Equal(t, 1, restored.Cart.Quantity(cart.VariantKey{ItemID: "soda", Choice: "Chica"}))
}
