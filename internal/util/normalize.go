package util

import (
	"net/mail"
	"strings"
)

// NormalizeSender extracts and normalizes an email address from a From-style
// value such as "Name <user+alias@Example.COM>" or a bare address.
// - Lowercases
// - Strips +alias in the local part: user+news@x.com -> user@x.com
// Returns empty string if parsing fails or the address is missing.
func NormalizeSender(from string) string {
	if from == "" {
		return ""
	}
	addr, err := mail.ParseAddress(from)
	if err != nil || addr == nil {
		// Could be a list; take the first entry that parses.
		for _, p := range strings.Split(from, ",") {
			a, e := mail.ParseAddress(strings.TrimSpace(p))
			if e == nil && a != nil {
				addr = a
				break
			}
		}
		if addr == nil {
			return ""
		}
	}

	email := strings.ToLower(strings.TrimSpace(addr.Address))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return email
	}
	local := email[:at]
	domain := email[at+1:]

	if plus := strings.IndexByte(local, '+'); plus > -1 {
		local = local[:plus]
	}
	// Dots in the local part are kept; only some providers ignore them.

	return local + "@" + domain
}

// FormatSender renders a display name and address as a From-style value.
// An empty name yields the bare address.
func FormatSender(name, email string) string {
	if email == "" {
		return name
	}
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}
