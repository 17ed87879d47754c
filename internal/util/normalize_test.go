package util

import "testing"

func TestNormalizeSender_Basic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Name <User@Example.COM>`, "user@example.com"},
		{`"Name" <user+news@Example.com>`, "user@example.com"},
		{`user+tag@EXAMPLE.com`, "user@example.com"},
		{`user.name+tag@EXAMPLE.com`, "user.name@example.com"}, // dots preserved
		{`tswift@gmail.com`, "tswift@gmail.com"},
		{`bad address`, ""},
		{`"A" <not-an-email> , "B" <c@D.com>`, "c@d.com"},
		{``, ""},
	}
	for _, tc := range tests {
		if got := NormalizeSender(tc.in); got != tc.want {
			t.Errorf("NormalizeSender(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSender(t *testing.T) {
	tests := []struct {
		name, email string
		want        string
	}{
		{"Taylor Swift", "tswift@gmail.com", `"Taylor Swift" <tswift@gmail.com>`},
		{"", "a@b.com", "a@b.com"},
		{"Nobody", "", "Nobody"},
	}
	for _, tc := range tests {
		if got := FormatSender(tc.name, tc.email); got != tc.want {
			t.Errorf("FormatSender(%q, %q) = %q; want %q", tc.name, tc.email, got, tc.want)
		}
	}
}
