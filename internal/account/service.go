package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatepass/gatepass/internal/credential"
	"github.com/gatepass/gatepass/internal/store"
)

const phoneLength = 10

var (
	// ErrMissingFields occurs when required fields are absent or malformed.
	// The message deliberately does not itemize which field failed.
	ErrMissingFields = errors.New("missing required fields")

	// ErrAlreadyExists occurs when creation targets a phone that already has
	// a user record.
	ErrAlreadyExists = errors.New("a user with that phone number already exists")

	// ErrForbidden occurs when token verification fails for the requested
	// phone. It covers missing, malformed, mismatched and expired tokens
	// alike.
	ErrForbidden = errors.New("missing required token in header, or token is invalid")

	// ErrNotFound occurs when a direct user lookup finds no record.
	ErrNotFound = errors.New("user not found")

	// ErrUnknownUser occurs when an update or deletion references a user that
	// does not exist.
	ErrUnknownUser = errors.New("the specified user does not exist")

	// ErrNoUpdatableFields occurs when an update carries none of the optional
	// fields. A request with nothing to change is rejected, not a no-op.
	ErrNoUpdatableFields = errors.New("missing fields to update")
)

// TokenVerifier reports whether a token id is currently valid for the given
// phone. Implementations are fail-closed: any anomaly yields false.
type TokenVerifier interface {
	Verify(ctx context.Context, id, phone string) bool
}

// Service manages user account lifecycle. Every operation other than Create
// is gated by the token verifier.
type Service struct {
	store  store.Store
	hasher *credential.Hasher
	tokens TokenVerifier
}

// NewService builds an account service.
func NewService(records store.Store, hasher *credential.Hasher, tokens TokenVerifier) *Service {
	return &Service{store: records, hasher: hasher, tokens: tokens}
}

// CreateInput captures the fields required to register a user.
type CreateInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Password     string
	TOSAgreement bool
}

// Create validates the input, hashes the password and persists the user. The
// store's atomic fail-if-exists create enforces at most one user per phone,
// also under concurrent registration.
func (s *Service) Create(ctx context.Context, input CreateInput) error {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	phone := strings.TrimSpace(input.Phone)
	password := strings.TrimSpace(input.Password)

	if firstName == "" || lastName == "" || len(phone) != phoneLength || password == "" || !input.TOSAgreement {
		return ErrMissingFields
	}

	user := User{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		HashedPassword: s.hasher.Hash(password),
		TOSAgreement:   true,
	}

	if err := s.store.Create(ctx, store.Users, phone, user); err != nil {
		if errors.Is(err, store.ErrExists) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Read returns the profile for phone, provided tokenID is valid for it. The
// returned Profile structurally lacks the password hash.
func (s *Service) Read(ctx context.Context, phone, tokenID string) (Profile, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) != phoneLength {
		return Profile{}, ErrMissingFields
	}

	if !s.tokens.Verify(ctx, tokenID, phone) {
		return Profile{}, ErrForbidden
	}

	var user User
	if err := s.store.Read(ctx, store.Users, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("read user: %w", err)
	}

	return Profile{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		TOSAgreement: user.TOSAgreement,
	}, nil
}

// UpdateInput captures an update request. Phone is required; the remaining
// fields are applied only when non-empty.
type UpdateInput struct {
	Phone     string
	FirstName string
	LastName  string
	Password  string
}

// Update applies the supplied fields to the stored user, leaving the rest
// untouched. A new password is hashed before it is stored.
func (s *Service) Update(ctx context.Context, input UpdateInput, tokenID string) error {
	phone := strings.TrimSpace(input.Phone)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	password := strings.TrimSpace(input.Password)

	if len(phone) != phoneLength {
		return ErrMissingFields
	}
	if firstName == "" && lastName == "" && password == "" {
		return ErrNoUpdatableFields
	}

	if !s.tokens.Verify(ctx, tokenID, phone) {
		return ErrForbidden
	}

	var user User
	if err := s.store.Read(ctx, store.Users, phone, &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("read user: %w", err)
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if password != "" {
		user.HashedPassword = s.hasher.Hash(password)
	}

	if err := s.store.Update(ctx, store.Users, phone, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes the user record for phone. Tokens issued to the user are not
// removed; a still-live token keeps verifying until it expires or is deleted.
// Known limitation, kept deliberately.
func (s *Service) Delete(ctx context.Context, phone, tokenID string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) != phoneLength {
		return ErrMissingFields
	}

	if !s.tokens.Verify(ctx, tokenID, phone) {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, store.Users, phone); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
