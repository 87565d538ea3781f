package order

import (
	"fmt"
	"strings"

	"pedidos_directos/internal/models"
	"pedidos_directos/internal/money"
)

const footerLine = "Pedidos Directos Pro"

// FormatCustomerMessage builds the WhatsApp message for one order.
// Customer fields that are empty after trimming are left out entirely.
// An empty cart still yields a valid message; refusing to send it is
// the orchestrator's job.
func FormatCustomerMessage(
	biz models.Business,
	lines []models.CartLine,
	customer models.Customer,
	total money.Cents,
	orderNumber string,
	fmtr *money.Formatter,
) string {
	out := make([]string, 0, len(lines)+12)

	out = append(out, fmt.Sprintf("*Nuevo pedido* — %s", biz.Name))

	if orderNumber != "" {
		out = append(out, fmt.Sprintf("*Pedido #%s*", orderNumber))
	}

	out = append(out, "")

	for _, l := range lines {
		out = append(out, fmt.Sprintf("• %d x %s%s — %s", l.Quantity, l.Name, l.OptionSuffix(), fmtr.Format(l.Subtotal())))
	}

	out = append(out, "")
	out = append(out, fmt.Sprintf("*Total:* %s", fmtr.Format(total)))

	c := customer.Normalized()
	if c.Name != "" {
		out = append(out, fmt.Sprintf("Nombre: %s", c.Name))
	}
	if c.Phone != "" {
		out = append(out, fmt.Sprintf("Teléfono: %s", c.Phone))
	}
	if c.Address != "" {
		out = append(out, fmt.Sprintf("Dirección: %s", c.Address))
	}
	if c.Note != "" {
		out = append(out, fmt.Sprintf("Nota: %s", c.Note))
	}

	out = append(out, "")
	out = append(out, footerLine)

	return strings.Join(out, "\n")
}

// FormatLogSummary builds the compact record for the order log:
// "2 x Soda (Chica), 1 x Soda (Grande)". No prices, no customer data.
func FormatLogSummary(lines []models.CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%d x %s%s", l.Quantity, l.Name, l.OptionSuffix()))
	}
	return strings.Join(parts, ", ")
}
