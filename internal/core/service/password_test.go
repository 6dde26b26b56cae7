package service

import (
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "secret1" || digest == "" {
		t.Fatalf("digest must not be empty or the plaintext")
	}
	if !h.Verify("secret1", digest) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("wrong", digest) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestPasswordHasher_SaltedDigests(t *testing.T) {
	h := NewPasswordHasher()

	d1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	d2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same plaintext must differ (embedded salt)")
	}
	if !h.Verify("same-password", d1) || !h.Verify("same-password", d2) {
		t.Fatalf("both digests must verify against the plaintext")
	}
}

func TestPasswordHasher_EmptyPlaintext(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("")
	if err != nil {
		t.Fatalf("hashing an empty plaintext must still succeed: %v", err)
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected a bcrypt digest, got %q", digest)
	}
	if !h.Verify("", digest) {
		t.Fatalf("empty plaintext must verify against its own digest")
	}
}
