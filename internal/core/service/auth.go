package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

// UsersKey owns the persisted credential table, SessionKey the persisted
// session record.
const (
	UsersKey   = "ionecenter_users"
	SessionKey = "ionecenter_auth"
)

// Built-in administrator, seeded when no credential table is persisted.
const (
	seedAdminID       = "admin-1"
	seedAdminName     = "Admin"
	seedAdminEmail    = "admin@ionecenter.com"
	seedAdminPassword = "admin123"
)

var _ port.Authenticator = (*AuthStore)(nil)

// AuthStore holds the credential table and the single nullable session.
// Passwords are persisted as bcrypt hashes only. Persistence failures
// degrade to deterministic login/signup failure, never panic.
type AuthStore struct {
	mu      sync.Mutex
	kv      port.KeyValueStore
	mirror  port.UserMirror
	events  port.EventsProducer
	now     func() time.Time
	creds   []domain.Credential
	session *domain.User
}

// NewAuthStore hydrates the credential table and session from kv,
// seeding the built-in administrator on first load. mirror and events
// are optional; pass nil to disable.
func NewAuthStore(
	kv port.KeyValueStore,
	mirror port.UserMirror,
	events port.EventsProducer,
) *AuthStore {
	s := &AuthStore{kv: kv, mirror: mirror, events: events, now: time.Now}
	s.hydrate()
	return s
}

func (s *AuthStore) hydrate() {
	const op = "AuthStore.hydrate"

	data, err := s.kv.Load(UsersKey)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s.creds); err != nil {
			slog.Warn("corrupt credential table, reseeding", "op", op, "err", err)
			s.seed()
		}
	case errors.Is(err, domain.ErrNotFound):
		s.seed()
	default:
		slog.Warn("failed to load credential table", "op", op, "err", err)
		s.seed()
	}

	data, err = s.kv.Load(SessionKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("failed to load session", "op", op, "err", err)
		}
		return
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		slog.Warn("corrupt session value, ignoring", "op", op, "err", err)
		return
	}
	s.session = &u
}

func (s *AuthStore) seed() {
	const op = "AuthStore.seed"

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(seedAdminPassword), bcrypt.DefaultCost,
	)
	if err != nil {
		slog.Error("failed to hash seed password", "op", op, "err", err)
		return
	}
	s.creds = []domain.Credential{{
		ID:           seedAdminID,
		Name:         seedAdminName,
		Email:        seedAdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    s.now(),
	}}
	s.persistCreds()
}

// Login scans the credential table for a matching email and verifies the
// password against the stored hash. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthStore) Login(ctx context.Context, email, password string) bool {
	s.mu.Lock()
	var found *domain.Credential
	for i := range s.creds {
		if s.creds[i].Email == email {
			found = &s.creds[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return false
	}
	err := bcrypt.CompareHashAndPassword(found.PasswordHash, []byte(password))
	if err != nil {
		s.mu.Unlock()
		return false
	}

	u := found.User()
	s.session = &u
	s.persistSession()
	s.mu.Unlock()

	s.emit(ctx, u.ID, domain.EventLogin)
	return true
}

// Signup appends a new credential record and establishes it as the
// session. A duplicate email fails without touching the table. The new
// public record is mirrored best-effort to the remote user store.
func (s *AuthStore) Signup(
	ctx context.Context, name, email, password string, role domain.Role,
) bool {
	const op = "AuthStore.Signup"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Warn("failed to hash password", "op", op, "err", err)
		return false
	}

	s.mu.Lock()
	for _, c := range s.creds {
		if c.Email == email {
			s.mu.Unlock()
			return false
		}
	}

	c := domain.Credential{
		ID:           fmt.Sprintf("user-%d", s.now().UnixMilli()),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	s.creds = append(s.creds, c)
	s.persistCreds()

	u := c.User()
	s.session = &u
	s.persistSession()
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.MirrorUser(ctx, u); err != nil {
			slog.Warn("failed to mirror user to remote store", "op", op,
				"userID", u.ID, "err", err)
		}
	}
	s.emit(ctx, u.ID, domain.EventSignup)
	return true
}

// Logout clears the in-memory session and removes its persisted value.
func (s *AuthStore) Logout(ctx context.Context) {
	const op = "AuthStore.Logout"

	s.mu.Lock()
	var userID string
	if s.session != nil {
		userID = s.session.ID
	}
	s.session = nil
	if err := s.kv.Delete(SessionKey); err != nil {
		slog.Warn("failed to remove persisted session", "op", op, "err", err)
	}
	s.mu.Unlock()

	if userID != "" {
		s.emit(ctx, userID, domain.EventLogout)
	}
}

// Session returns the current session's public fields.
func (s *AuthStore) Session() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.User{}, false
	}
	return *s.session, true
}

// UpdateProfile merges the given fields into the session and into the
// underlying credential record, so edits survive a fresh login. Returns
// false when no session is active.
func (s *AuthStore) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return false
	}
	if upd.Name != nil {
		s.session.Name = *upd.Name
	}
	if upd.Email != nil {
		s.session.Email = *upd.Email
	}
	for i := range s.creds {
		if s.creds[i].ID == s.session.ID {
			s.creds[i].Name = s.session.Name
			s.creds[i].Email = s.session.Email
			break
		}
	}
	s.persistCreds()
	s.persistSession()
	return true
}

// Users returns the public projection of every credential record.
func (s *AuthStore) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	us := make([]domain.User, 0, len(s.creds))
	for _, c := range s.creds {
		us = append(us, c.User())
	}
	return us
}

// persistCreds re-serializes the credential table. Callers hold s.mu.
func (s *AuthStore) persistCreds() {
	const op = "AuthStore.persistCreds"

	data, err := json.Marshal(s.creds)
	if err != nil {
		slog.Warn("failed to marshal credential table", "op", op, "err", err)
		return
	}
	if err := s.kv.Store(UsersKey, data); err != nil {
		slog.Warn("failed to persist credential table", "op", op, "err", err)
	}
}

// persistSession mirrors the session to the key-value store. Callers
// hold s.mu.
func (s *AuthStore) persistSession() {
	const op = "AuthStore.persistSession"

	data, err := json.Marshal(s.session)
	if err != nil {
		slog.Warn("failed to marshal session", "op", op, "err", err)
		return
	}
	if err := s.kv.Store(SessionKey, data); err != nil {
		slog.Warn("failed to persist session", "op", op, "err", err)
	}
}

func (s *AuthStore) emit(ctx context.Context, userID string, kind domain.EventKind) {
	const op = "AuthStore.emit"

	if s.events == nil {
		return
	}
	e := domain.ClientEvent{UserID: userID, Kind: kind, At: s.now()}
	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.Warn("failed to produce client event", "op", op,
			"kind", kind, "err", err)
	}
}
