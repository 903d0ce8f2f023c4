package service

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const defaultPhoneRegion = "ID"

// ErrInvalidContact wraps all contact validation failures so handlers can
// map them to a 400 without inspecting messages.
var ErrInvalidContact = errors.New("invalid contact data")

// ContactValidator normalises and validates the contact fields attached
// to directory records.
type ContactValidator struct {
	DefaultRegion string
}

// NewContactValidator builds a validator for the given default phone region.
func NewContactValidator(region string) *ContactValidator {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = defaultPhoneRegion
	}
	return &ContactValidator{DefaultRegion: region}
}

// Email lowercases and validates an address, including an IDNA check on
// the domain part. Returns the normalised address.
func (v *ContactValidator) Email(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is empty", ErrInvalidContact)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: malformed email %q", ErrInvalidContact, raw)
	}

	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if _, err := idnaProfile.ToASCII(domain); err != nil {
		return "", fmt.Errorf("%w: invalid email domain %q", ErrInvalidContact, domain)
	}

	return email, nil
}

// Phone parses and validates a phone number, returning E.164 format.
func (v *ContactValidator) Phone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: phone is empty", ErrInvalidContact)
	}

	parsed, err := phonenumbers.Parse(trimmed, v.DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: unparseable phone %q", ErrInvalidContact, raw)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("%w: invalid phone %q", ErrInvalidContact, raw)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// junkLinkPattern matches placeholder strings people type instead of a URL.
var junkLinkPattern = regexp.MustCompile(`^(https?://)?(www\.)?[-#]+$`)

// Website normalises a website or profile link: placeholder junk is
// rejected, a missing scheme defaults to https.
func (v *ContactValidator) Website(raw string) (string, error) {
	link := strings.TrimSpace(raw)
	if link == "" || link == "-" || strings.EqualFold(link, "n/a") || junkLinkPattern.MatchString(link) {
		return "", fmt.Errorf("%w: unusable link %q", ErrInvalidContact, raw)
	}

	if !strings.HasPrefix(strings.ToLower(link), "http://") && !strings.HasPrefix(strings.ToLower(link), "https://") {
		link = "https://" + link
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" || strings.Trim(parsed.Host, "-.") == "" {
		return "", fmt.Errorf("%w: malformed link %q", ErrInvalidContact, raw)
	}

	return link, nil
}
