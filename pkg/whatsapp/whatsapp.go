// Package whatsapp composes click-to-chat deep links for the WhatsApp
// web composer.
package whatsapp

import (
	"net/url"
	"strings"
)

// DefaultComposerURL is the third-party chat composition endpoint. The
// normalized phone number is appended as a path segment and the message
// body as the text query parameter.
const DefaultComposerURL = "https://wa.me/"

// NormalizePhone strips every non-digit character from raw. A bare
// 10-digit local number gets the "91" country prefix; anything else is
// returned as its digit string unmodified, with no further length or
// format validation.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return "91" + digits
	}
	return digits
}

// ComposeURL builds the chat composer deep link for an already normalized
// phone number and a plain-text message body.
func ComposeURL(phone, message string) string {
	return DefaultComposerURL + phone + "?text=" + url.QueryEscape(message)
}
