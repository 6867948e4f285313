package content

import (
	"net/url"
	"strings"
)

const whatsAppBase = "https://wa.me/"

// MessageLink builds a WhatsApp deep link for the product with text
// pre-filled. The number is not validated; formatting characters and the
// leading plus sign are dropped because wa.me expects bare digits.
func MessageLink(p Product, text string) string {
	var number strings.Builder
	for _, r := range p.WhatsAppNumber {
		if r >= '0' && r <= '9' {
			number.WriteRune(r)
		}
	}
	return whatsAppBase + number.String() + "?text=" + encodeComponent(text)
}

// PriceSuffix renders " (price)" for message templates, or "" without a price.
func (p Product) PriceSuffix() string {
	if strings.TrimSpace(p.Price) == "" {
		return ""
	}
	return " (" + strings.TrimSpace(p.Price) + ")"
}

// encodeComponent percent-encodes s the way browsers encode URI components:
// spaces become %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
