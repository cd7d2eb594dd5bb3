// Package phone normalizes Argentine WhatsApp phone numbers between the
// two formats the messaging provider uses.
//
// Inbound deliveries identify the sender as 549XXXXXXXXXX (country code 54
// followed by the mobile indicator 9). Outbound sends through the Graph API
// reject that variant and expect 54XXXXXXXXXX. ToOutbound converts the
// former into the latter; numbers in any other format pass through trimmed.
package phone

import "strings"

// ToOutbound returns the address accepted by the send API for a number in
// inbound-delivery format.
func ToOutbound(inbound string) string {
	n := strings.TrimSpace(inbound)
	n = strings.TrimPrefix(n, "+")
	if strings.HasPrefix(n, "549") && len(n) == 13 {
		return "54" + n[3:]
	}
	return n
}

// Matches reports whether two numbers identify the same line regardless of
// which delivery format each one uses.
func Matches(a, b string) bool {
	return ToOutbound(a) == ToOutbound(b)
}
