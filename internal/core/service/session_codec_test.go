package service

import (
	"testing"
	"time"
)

func newTestCodec(t *testing.T, secret string, ttl time.Duration, at time.Time) *SessionCodec {
	t.Helper()
	c, err := NewSessionCodec(secret, ttl)
	if err != nil {
		t.Fatalf("NewSessionCodec: %v", err)
	}
	c.now = func() time.Time { return at }
	return c
}

func TestSessionCodec_MissingSecret(t *testing.T) {
	if _, err := NewSessionCodec("", time.Hour); err != ErrMissingSecret {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestSessionCodec_RoundTrip(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, "secret", time.Hour, t0)

	value, err := codec.Encode("user-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Valid at issuance and just before expiry.
	for _, now := range []time.Time{t0, t0.Add(30 * time.Minute), t0.Add(time.Hour - time.Second)} {
		codec.now = func() time.Time { return now }
		userID, ok := codec.Decode(value)
		if !ok {
			t.Fatalf("Decode failed at %v", now)
		}
		if userID != "user-123" {
			t.Fatalf("expected user-123, got %q", userID)
		}
	}
}

func TestSessionCodec_Expiry(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, "secret", time.Hour, t0)

	value, err := codec.Encode("user-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for _, now := range []time.Time{t0.Add(time.Hour + time.Minute), t0.Add(48 * time.Hour)} {
		codec.now = func() time.Time { return now }
		if _, ok := codec.Decode(value); ok {
			t.Fatalf("expected expired session at %v", now)
		}
	}
}

func TestSessionCodec_Tamper(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, "secret", time.Hour, t0)

	value, err := codec.Encode("user-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flipping any byte must fail closed.
	for i := 0; i < len(value); i++ {
		mutated := []byte(value)
		mutated[i] ^= 0x01
		if uid, ok := codec.Decode(string(mutated)); ok && uid != "user-123" {
			t.Fatalf("tampered value at byte %d decoded to %q", i, uid)
		} else if ok {
			t.Fatalf("tampered value at byte %d still verified", i)
		}
	}
}

func TestSessionCodec_WrongSecret(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestCodec(t, "secret-a", time.Hour, t0)
	verifier := newTestCodec(t, "secret-b", time.Hour, t0)

	value, err := issuer.Encode("user-123")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, ok := verifier.Decode(value); ok {
		t.Fatalf("value signed with another secret must not verify")
	}
}

func TestSessionCodec_MalformedValues(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, "secret", time.Hour, t0)

	for _, value := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, ok := codec.Decode(value); ok {
			t.Fatalf("malformed value %q must not decode", value)
		}
	}
}
