package credential

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	h := NewHasher("secret")
	if h.Hash("password") != h.Hash("password") {
		t.Fatalf("expected identical hashes for identical input")
	}
}

func TestHashVariesWithInputAndSecret(t *testing.T) {
	h := NewHasher("secret")
	if h.Hash("password") == h.Hash("different") {
		t.Fatalf("expected different passwords to hash differently")
	}

	other := NewHasher("another-secret")
	if h.Hash("password") == other.Hash("password") {
		t.Fatalf("expected different secrets to hash differently")
	}
}

func TestHashNeverEchoesPassword(t *testing.T) {
	h := NewHasher("secret")
	out := h.Hash("hunter2")
	if out == "hunter2" || out == "" {
		t.Fatalf("unexpected hash output %q", out)
	}
	if len(out) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(out))
	}
}
