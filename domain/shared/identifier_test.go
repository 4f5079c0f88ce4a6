package shared

import (
	"errors"
	"testing"
)

func TestParseIDFormatIDRoundTrip(t *testing.T) {
	keys := []uint64{1, 7, 42, 1000, 9999999, 1<<62 + 3, 1<<63 - 1}
	for _, key := range keys {
		id := FormatID(key)
		parsed, err := ParseID("product", id)
		if err != nil {
			t.Fatalf("ParseID(%q) returned error: %v", id, err)
		}
		if parsed != key {
			t.Errorf("round trip of %d produced %d", key, parsed)
		}
	}
}

func TestParseIDRejectsInvalidForms(t *testing.T) {
	cases := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"zero", "0"},
		{"leading zero", "042"},
		{"all zeros", "000"},
		{"non numeric", "abc"},
		{"mixed", "12x"},
		{"negative", "-1"},
		{"plus sign", "+1"},
		{"whitespace", " 1"},
		{"over 63 bits", "9223372036854775808"},
		{"uuid style", "550e8400-e29b-41d4-a716-446655440000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseID("order", tc.id)
			if err == nil {
				t.Fatalf("ParseID(%q) accepted invalid identifier", tc.id)
			}
			if !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("error for %q is not ErrInvalidIdentifier: %v", tc.id, err)
			}
		})
	}
}

func TestParseIDAcceptsMaxKey(t *testing.T) {
	key, err := ParseID("shop", "9223372036854775807")
	if err != nil {
		t.Fatalf("max key rejected: %v", err)
	}
	if key != 1<<63-1 {
		t.Errorf("got %d", key)
	}
}

func TestFormatNullableID(t *testing.T) {
	if got := FormatNullableID(nil); got != "" {
		t.Errorf("nil key formatted as %q", got)
	}
	key := uint64(12)
	if got := FormatNullableID(&key); got != "12" {
		t.Errorf("got %q", got)
	}
}
