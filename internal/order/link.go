package order

import (
	"fmt"
	"net/url"

	"pedidos_directos/internal/models"
)

// WhatsAppLink builds the wa.me deep link that opens a chat with the
// business pre-filled with the order message.
func WhatsAppLink(phone, text string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + models.DigitsOnly(phone),
		RawQuery: "text=" + url.QueryEscape(text),
	}
	return u.String()
}

// MapsLink builds a Google Maps link for a coordinate pair.
func MapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/?q=%v,%v", lat, lng)
}
