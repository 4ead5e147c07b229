package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare ten digits gets country code", "9876543210", "919876543210"},
		{"formatted with plus and spaces", "+91 98765 43210", "919876543210"},
		{"dashes and parens stripped", "(987) 654-3210", "919876543210"},
		{"already prefixed twelve digits unchanged", "919876543210", "919876543210"},
		{"short number left as-is", "12345", "12345"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw))
		})
	}
}

func TestComposeURL(t *testing.T) {
	got := ComposeURL("919876543210", "Dear Jane Doe, your bill is ready & waiting")
	assert.Equal(t,
		"https://wa.me/919876543210?text=Dear+Jane+Doe%2C+your+bill+is+ready+%26+waiting",
		got)
}
