package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos_directos/internal/models"
)

func TestDefaultSelectionsPickFirstChoice(t *testing.T) {
	sel := DefaultSelections([]models.Item{taco(), soda()})

	assert.Equal(t, "Chica", sel.Resolve(soda()))
	assert.Equal(t, "", sel.Resolve(taco()))
	_, hasTaco := sel["taco"]
	assert.False(t, hasTaco, "items without variants get no selection entry")
}

func TestSelectionsSetRejectsUnknownChoice(t *testing.T) {
	item := soda()
	sel := DefaultSelections([]models.Item{item})

	err := sel.Set(item, "Mediana")
	require.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, "Chica", sel.Resolve(item), "failed set leaves the selection untouched")

	err = sel.Set(taco(), "Grande")
	assert.ErrorIs(t, err, ErrInvalidChoice, "items without variants offer no choices")
}

func TestSelectionsKeyIsStablePerSelection(t *testing.T) {
	item := soda()
	sel := DefaultSelections([]models.Item{item})

	first := sel.Key(item)
	second := sel.Key(item)
	assert.Equal(t, first, second)

	require.NoError(t, sel.Set(item, "Grande"))
	changed := sel.Key(item)
	assert.NotEqual(t, first, changed)
	assert.Equal(t, VariantKey{ItemID: "soda", Choice: "Grande"}, changed)
}

func TestSelectionsKeyForPlainItemHasEmptyChoice(t *testing.T) {
	sel := DefaultSelections([]models.Item{taco()})
	assert.Equal(t, VariantKey{ItemID: "taco", Choice: ""}, sel.Key(taco()))
}
