package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatepass/gatepass/internal/credential"
	"github.com/gatepass/gatepass/internal/store"
)

const phoneLength = 10

var (
	// ErrMissingFields occurs when required fields are absent or malformed.
	ErrMissingFields = errors.New("missing required fields, or fields are invalid")

	// ErrUnknownUser occurs when issuance references a phone with no user record.
	ErrUnknownUser = errors.New("could not find the specified user")

	// ErrInvalidCredentials occurs when the presented password does not hash
	// to the stored value.
	ErrInvalidCredentials = errors.New("password did not match the specified user's stored password")

	// ErrNotFound occurs when a direct token lookup finds no record.
	ErrNotFound = errors.New("token not found")

	// ErrUnknownToken occurs when renewal or deletion references a token that
	// does not exist.
	ErrUnknownToken = errors.New("specified token does not exist")

	// ErrExpired occurs when renewal is attempted on a token past its expiry.
	// Expired tokens cannot be extended and must be re-issued.
	ErrExpired = errors.New("the token has already expired and cannot be extended")
)

// Service drives the token lifecycle: issue, read, renew, verify, delete.
type Service struct {
	store  store.Store
	hasher *credential.Hasher
	ttl    time.Duration
}

// NewService builds a token service. ttl is the lifetime granted at issuance
// and again at each renewal.
func NewService(records store.Store, hasher *credential.Hasher, ttl time.Duration) *Service {
	return &Service{store: records, hasher: hasher, ttl: ttl}
}

// Issue authenticates phone/password against the stored user record and, on
// success, persists and returns a fresh token expiring ttl from now.
func (s *Service) Issue(ctx context.Context, phone, password string) (Token, error) {
	phone = strings.TrimSpace(phone)
	password = strings.TrimSpace(password)
	if len(phone) != phoneLength || password == "" {
		return Token{}, ErrMissingFields
	}

	var user struct {
		HashedPassword string `json:"hashedPassword"`
	}
	if err := s.store.Read(ctx, store.Users, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrUnknownUser
		}
		return Token{}, fmt.Errorf("read user: %w", err)
	}

	if s.hasher.Hash(password) != user.HashedPassword {
		return Token{}, ErrInvalidCredentials
	}

	id, err := NewID()
	if err != nil {
		return Token{}, err
	}

	tok := Token{
		Phone:   phone,
		ID:      id,
		Expires: time.Now().Add(s.ttl).UnixMilli(),
	}
	if err := s.store.Create(ctx, store.Tokens, id, tok); err != nil {
		return Token{}, fmt.Errorf("store token: %w", err)
	}
	return tok, nil
}

// Read returns the stored token for id. The format check runs before the
// storage lookup so malformed ids never touch the store.
func (s *Service) Read(ctx context.Context, id string) (Token, error) {
	id = strings.TrimSpace(id)
	if len(id) != IDLength {
		return Token{}, ErrMissingFields
	}

	var tok Token
	if err := s.store.Read(ctx, store.Tokens, id, &tok); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Token{}, ErrNotFound
		}
		return Token{}, fmt.Errorf("read token: %w", err)
	}
	return tok, nil
}

// Renew pushes a live token's expiry to ttl from now. extend must be exactly
// true: a renewal request carrying false is malformed, not a no-op.
func (s *Service) Renew(ctx context.Context, id string, extend bool) error {
	id = strings.TrimSpace(id)
	if len(id) != IDLength || !extend {
		return ErrMissingFields
	}

	var tok Token
	if err := s.store.Read(ctx, store.Tokens, id, &tok); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("read token: %w", err)
	}

	if !tok.Live(time.Now().UnixMilli()) {
		return ErrExpired
	}

	tok.Expires = time.Now().Add(s.ttl).UnixMilli()
	if err := s.store.Update(ctx, store.Tokens, id, tok); err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	return nil
}

// Delete removes the token record for id.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if len(id) != IDLength {
		return ErrMissingFields
	}

	if err := s.store.Delete(ctx, store.Tokens, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownToken
		}
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Verify reports whether id names a live token issued to phone. It is the
// sole authorization gate in front of user resources and is fail-closed: a
// malformed id, a missing record, a phone mismatch and an expired token all
// collapse to false, so callers cannot tell why authorization failed.
func (s *Service) Verify(ctx context.Context, id, phone string) bool {
	id = strings.TrimSpace(id)
	if len(id) != IDLength {
		return false
	}

	var tok Token
	if err := s.store.Read(ctx, store.Tokens, id, &tok); err != nil {
		return false
	}
	return tok.Phone == phone && tok.Live(time.Now().UnixMilli())
}
