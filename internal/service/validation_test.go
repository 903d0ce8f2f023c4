package service

import (
	"errors"
	"testing"
)

func TestContactValidator_Email(t *testing.T) {
	v := NewContactValidator("ID")

	email, err := v.Email("  Jane.Doe@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "jane.doe@example.com" {
		t.Fatalf("expected lowercased email, got %q", email)
	}

	for _, bad := range []string{"", "not-an-email", "a@b", "spaces in@example.com"} {
		if _, err := v.Email(bad); !errors.Is(err, ErrInvalidContact) {
			t.Fatalf("expected ErrInvalidContact for %q, got %v", bad, err)
		}
	}
}

func TestContactValidator_Phone(t *testing.T) {
	v := NewContactValidator("ID")

	formatted, err := v.Phone("0812 3456 7890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if formatted != "+6281234567890" {
		t.Fatalf("expected E.164 output, got %q", formatted)
	}

	if _, err := v.Phone("12"); !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("expected ErrInvalidContact, got %v", err)
	}
	if _, err := v.Phone(""); !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("expected ErrInvalidContact for empty input, got %v", err)
	}
}

func TestContactValidator_Website(t *testing.T) {
	v := NewContactValidator("ID")

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"acme.example", "https://acme.example", true},
		{"https://acme.example/jobs", "https://acme.example/jobs", true},
		{"-", "", false},
		{"n/a", "", false},
		{"www.---", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := v.Website(tc.input)
		if tc.ok {
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("Website(%q) = %q, want %q", tc.input, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidContact) {
			t.Fatalf("expected ErrInvalidContact for %q, got %v", tc.input, err)
		}
	}
}
