package rules

import (
	"net/mail"
	"net/netip"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Email validates an address with net/mail and requires a dotted domain.
func Email(address string) error {
	fail := func() error {
		return violation("email", ErrInvalidFormat, "must be a valid email address",
			map[string]any{"value": address})
	}

	addr, err := mail.ParseAddress(address)
	if err != nil || addr.Address != strings.TrimSpace(address) {
		return fail()
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return fail()
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return fail()
		}
	}
	if !strings.Contains(domain, ".") {
		return fail()
	}
	return nil
}

// URL requires an absolute URL with a host and one of the given schemes.
// An empty scheme list accepts http and https.
func URL(raw string, schemes []string) error {
	if len(schemes) == 0 {
		schemes = []string{"http", "https"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || !slices.Contains(schemes, strings.ToLower(u.Scheme)) {
		return violation("url", ErrInvalidFormat, "must be a valid URL",
			map[string]any{"value": raw, "schemes": schemes})
	}
	return nil
}

// IPAddress accepts IPv4 and IPv6 addresses without zones.
func IPAddress(value string) error {
	addr, err := netip.ParseAddr(value)
	if err != nil || addr.Zone() != "" {
		return violation("ip_address", ErrInvalidFormat, "must be a valid IP address",
			map[string]any{"value": value})
	}
	return nil
}

// UUID accepts the canonical 36-character form only.
func UUID(id string) error {
	if len(id) != 36 {
		return violation("uuid", ErrInvalidFormat, "must be a valid UUID",
			map[string]any{"value": id})
	}
	if _, err := uuid.Parse(id); err != nil {
		return violation("uuid", ErrInvalidFormat, "must be a valid UUID",
			map[string]any{"value": id})
	}
	return nil
}

// Date parses value with the given time layout.
func Date(value, layout string) error {
	if _, err := time.Parse(layout, value); err != nil {
		return violation("date", ErrInvalidFormat, "must be a date in layout "+layout,
			map[string]any{"value": value, "layout": layout})
	}
	return nil
}

// PastDate requires a date strictly before now.
func PastDate(value, layout string) error {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date(value, layout)
	}
	if !t.Before(time.Now()) {
		return violation("past_date", ErrOutOfRange, "must be in the past",
			map[string]any{"value": value})
	}
	return nil
}
