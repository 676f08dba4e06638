package services

import (
	"testing"

	"golang.org/x/text/language"
)

func TestHumanize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"notFound", "Not Found"},
		{"payloadTooLarge", "Payload Too Large"},
		{"payload_too_large", "Payload Too Large"},
		{"kebab-case-name", "Kebab Case Name"},
		{"teapot", "Teapot"},
		{"HTTPVersion", "Http Version"},
		{"retry2", "Retry 2"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Humanize(tc.in, language.Und); got != tc.want {
			t.Fatalf("Humanize(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultMessage(t *testing.T) {
	if got := DefaultMessage(429, "slowDown", language.English); got != "Too Many Requests" {
		t.Fatalf("DefaultMessage(429) = %q", got)
	}
	if got := DefaultMessage(299, "almostFine", language.English); got != "Almost Fine" {
		t.Fatalf("DefaultMessage(299) = %q", got)
	}
}
