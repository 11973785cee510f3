package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatepass/gatepass/internal/credential"
	"github.com/gatepass/gatepass/internal/store"
)

const (
	testPhone    = "5551234567"
	testPassword = "secret"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	records := store.NewMemoryStore()
	hasher := credential.NewHasher("test-secret")
	seedUser(t, records, hasher, testPhone, testPassword)
	return NewService(records, hasher, time.Hour), records
}

func seedUser(t *testing.T, records store.Store, hasher *credential.Hasher, phone, password string) {
	t.Helper()
	user := map[string]any{
		"firstName":      "Jane",
		"lastName":       "Doe",
		"phone":          phone,
		"hashedPassword": hasher.Hash(password),
		"tosAgreement":   true,
	}
	if err := records.Create(context.Background(), store.Users, phone, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func forceExpiry(t *testing.T, records store.Store, tok Token) {
	t.Helper()
	tok.Expires = time.Now().Add(-time.Minute).UnixMilli()
	if err := records.Update(context.Background(), store.Tokens, tok.ID, tok); err != nil {
		t.Fatalf("force expiry: %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before := time.Now()
	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	after := time.Now()

	if len(tok.ID) != IDLength {
		t.Fatalf("expected %d-char id, got %q", IDLength, tok.ID)
	}
	if tok.Phone != testPhone {
		t.Fatalf("expected phone %s, got %s", testPhone, tok.Phone)
	}
	if tok.Expires < before.Add(time.Hour).UnixMilli() || tok.Expires > after.Add(time.Hour).UnixMilli() {
		t.Fatalf("expiry not one hour out: %d", tok.Expires)
	}

	if !svc.Verify(ctx, tok.ID, testPhone) {
		t.Fatalf("expected fresh token to verify")
	}
	if svc.Verify(ctx, tok.ID, "5550000000") {
		t.Fatalf("expected verification to fail for another phone")
	}
}

func TestIssueUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Issue(context.Background(), "5550000000", testPassword); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected unknown user, got %v", err)
	}
}

func TestIssueWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Issue(context.Background(), testPhone, "not-it"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestIssueMalformedInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Issue(ctx, "123", testPassword); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing fields for short phone, got %v", err)
	}
	if _, err := svc.Issue(ctx, testPhone, "   "); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing fields for blank password, got %v", err)
	}
}

func TestReadReturnsStoredToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	issued, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tok, err := svc.Read(ctx, issued.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tok != issued {
		t.Fatalf("expected %+v, got %+v", issued, tok)
	}
}

func TestReadMalformedID(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Read(context.Background(), "short"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
}

func TestReadUnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Read(context.Background(), "aaaaaaaaaaaaaaaaaaaa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRenewExtendsExpiry(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Pull the expiry back so the renewal visibly moves it forward.
	aged := tok
	aged.Expires = time.Now().Add(time.Minute).UnixMilli()
	if err := records.Update(ctx, store.Tokens, tok.ID, aged); err != nil {
		t.Fatalf("age token: %v", err)
	}

	before := time.Now()
	if err := svc.Renew(ctx, tok.ID, true); err != nil {
		t.Fatalf("renew: %v", err)
	}

	renewed, err := svc.Read(ctx, tok.ID)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if renewed.Expires < before.Add(time.Hour).UnixMilli() {
		t.Fatalf("expected expiry pushed an hour out, got %d", renewed.Expires)
	}
}

func TestRenewRejectsExtendFalse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Renew(ctx, tok.ID, false); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected missing fields for extend=false, got %v", err)
	}
}

func TestRenewUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Renew(context.Background(), "aaaaaaaaaaaaaaaaaaaa", true); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected unknown token, got %v", err)
	}
}

func TestRenewExpiredToken(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	forceExpiry(t, records, tok)

	if err := svc.Renew(ctx, tok.ID, true); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Delete(ctx, tok.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Read(ctx, tok.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, tok.ID); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected unknown token on second delete, got %v", err)
	}
}

func TestVerifyFailClosed(t *testing.T) {
	svc, records := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Issue(ctx, testPhone, testPassword)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if svc.Verify(ctx, "aaaaaaaaaaaaaaaaaaaa", testPhone) {
		t.Fatalf("expected false for nonexistent id")
	}
	if svc.Verify(ctx, "short", testPhone) {
		t.Fatalf("expected false for malformed id")
	}
	if svc.Verify(ctx, tok.ID, "5550000000") {
		t.Fatalf("expected false for mismatched phone")
	}

	forceExpiry(t, records, tok)
	if svc.Verify(ctx, tok.ID, testPhone) {
		t.Fatalf("expected false for expired token")
	}
}

func TestNewIDShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(id) != IDLength {
			t.Fatalf("expected %d chars, got %q", IDLength, id)
		}
		for _, r := range id {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				t.Fatalf("unexpected character %q in id %q", r, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
