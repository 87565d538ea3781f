package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos_directos/internal/models"
	"pedidos_directos/internal/money"
)

func testFormatter(t *testing.T) *money.Formatter {
	t.Helper()
	f, err := money.NewFormatter("es-MX", "MXN")
	require.NoError(t, err)
	return f
}

func testBusiness() models.Business {
	return models.Business{Name: "Tacos El Paso", WhatsApp: "5215512345678"}
}

func TestFormatCustomerMessageFullOrder(t *testing.T) {
	lines := []models.CartLine{
		{ItemID: "taco", Name: "Taco", UnitPrice: 1500, Quantity: 3},
		{ItemID: "soda", Name: "Soda", Option: "Grande", UnitPrice: 2500, Quantity: 1},
	}
	customer := models.Customer{
		Name:    "Ana",
		Phone:   "+52 (155) 111-2233",
		Address: "Calle 5 #10",
		Note:    "Sin cebolla",
	}

	got := FormatCustomerMessage(testBusiness(), lines, customer, 7000, "42", testFormatter(t))

	want := strings.Join([]string{
		"*Nuevo pedido* — Tacos El Paso",
		"*Pedido #42*",
		"",
		"• 3 x Taco — $45.00",
		"• 1 x Soda (Grande) — $25.00",
		"",
		"*Total:* $70.00",
		"Nombre: Ana",
		"Teléfono: 521551112233",
		"Dirección: Calle 5 #10",
		"Nota: Sin cebolla",
		"",
		"Pedidos Directos Pro",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatCustomerMessageWithoutOrderNumber(t *testing.T) {
	lines := []models.CartLine{{ItemID: "taco", Name: "Taco", UnitPrice: 1500, Quantity: 3}}

	got := FormatCustomerMessage(testBusiness(), lines, models.Customer{}, 4500, "", testFormatter(t))

	assert.NotContains(t, got, "Pedido #")
	assert.Contains(t, got, "*Total:* $45.00")
}

func TestFormatCustomerMessageOmitsBlankCustomerFields(t *testing.T) {
	lines := []models.CartLine{{ItemID: "taco", Name: "Taco", UnitPrice: 1500, Quantity: 1}}
	customer := models.Customer{Name: "  ", Phone: " - ", Address: "", Note: "\t"}

	got := FormatCustomerMessage(testBusiness(), lines, customer, 1500, "", testFormatter(t))

	assert.NotContains(t, got, "Nombre:")
	assert.NotContains(t, got, "Teléfono:")
	assert.NotContains(t, got, "Dirección:")
	assert.NotContains(t, got, "Nota:")
	assert.NotContains(t, got, "\n\n\n", "omitted fields leave no blank lines behind")
}

func TestFormatCustomerMessageEmptyCartStillValid(t *testing.T) {
	got := FormatCustomerMessage(testBusiness(), nil, models.Customer{}, 0, "", testFormatter(t))

	parts := strings.Split(got, "\n")
	assert.Equal(t, "*Nuevo pedido* — Tacos El Paso", parts[0])
	assert.Contains(t, got, "*Total:* $0.00")
	assert.Equal(t, "Pedidos Directos Pro", parts[len(parts)-1])
}

func TestFormatCustomerMessageIsDeterministic(t *testing.T) {
	lines := []models.CartLine{{ItemID: "taco", Name: "Taco", UnitPrice: 1500, Quantity: 2}}
	customer := models.Customer{Name: "Ana"}

	first := FormatCustomerMessage(testBusiness(), lines, customer, 3000, "7", testFormatter(t))
	second := FormatCustomerMessage(testBusiness(), lines, customer, 3000, "7", testFormatter(t))
	assert.Equal(t, first, second)
}

func TestFormatLogSummary(t *testing.T) {
	lines := []models.CartLine{
		{ItemID: "soda", Name: "Soda", Option: "Chica", UnitPrice: 2500, Quantity: 2},
		{ItemID: "soda", Name: "Soda", Option: "Grande", UnitPrice: 2500, Quantity: 1},
		{ItemID: "taco", Name: "Taco", UnitPrice: 1500, Quantity: 3},
	}

	got := FormatLogSummary(lines)
	assert.Equal(t, "2 x Soda (Chica), 1 x Soda (Grande), 3 x Taco", got)
	assert.NotContains(t, got, "$", "log summary carries no pricing")
}

func TestFormatLogSummaryEmpty(t *testing.T) {
	assert.Equal(t, "", FormatLogSummary(nil))
}
