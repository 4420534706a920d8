package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/service"
)

const (
	adminEmail    = "admin@ionecenter.com"
	adminPassword = "admin123"
)

// recordingMirror captures mirrored public records.
type recordingMirror struct {
	mu    sync.Mutex
	users []domain.User
	err   error
}

func (m *recordingMirror) MirrorUser(_ context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.users = append(m.users, u)
	return nil
}

func TestAuthStore(t *testing.T) {
	t.Run("SeededAdminLogin", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		require.True(t, s.Login(t.Context(), adminEmail, adminPassword))

		u, ok := s.Session()
		require.True(t, ok)
		assert.Equal(t, "admin-1", u.ID)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		assert.False(t, s.Login(t.Context(), adminEmail, "letmein"))
		_, ok := s.Session()
		assert.False(t, ok)
	})

	t.Run("LoginUnknownEmail", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		assert.False(t, s.Login(t.Context(), "nobody@ionecenter.com", adminPassword))
	})

	t.Run("SignupEstablishesSession", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		ok := s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer)
		require.True(t, ok)

		u, active := s.Session()
		require.True(t, active)
		assert.Equal(t, "Dana", u.Name)
		assert.Equal(t, "dana@example.com", u.Email)
		assert.Equal(t, domain.RoleBuyer, u.Role)
		assert.NotEmpty(t, u.ID)
	})

	t.Run("SignupDuplicateEmailFails", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))
		assert.False(t, s.Signup(t.Context(), "Impostor", "dana@example.com", "other", domain.RoleSeller))

		// seeded admin plus one signup
		assert.Len(t, s.Users(), 2)
	})

	t.Run("SignupNewEmailAfterLogout", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))
		s.Logout(t.Context())
		require.True(t, s.Signup(t.Context(), "Omar", "omar@example.com", "s3cret", domain.RoleSeller))

		assert.Len(t, s.Users(), 3)
	})

	t.Run("LogoutClearsSession", func(t *testing.T) {
		kv := newFakeKV()
		s := service.NewAuthStore(kv, nil, nil)
		require.True(t, s.Login(t.Context(), adminEmail, adminPassword))

		s.Logout(t.Context())

		_, ok := s.Session()
		assert.False(t, ok)
		_, err := kv.Load(service.SessionKey)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SessionSurvivesRehydration", func(t *testing.T) {
		kv := newFakeKV()
		s := service.NewAuthStore(kv, nil, nil)
		require.True(t, s.Login(t.Context(), adminEmail, adminPassword))

		reopened := service.NewAuthStore(kv, nil, nil)
		u, ok := reopened.Session()
		require.True(t, ok)
		assert.Equal(t, "admin-1", u.ID)
	})

	t.Run("UpdateProfileSurvivesRelogin", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)
		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))

		name := "Dana K."
		require.True(t, s.UpdateProfile(t.Context(), domain.ProfileUpdate{Name: &name}))

		s.Logout(t.Context())
		require.True(t, s.Login(t.Context(), "dana@example.com", "s3cret"))

		u, ok := s.Session()
		require.True(t, ok)
		assert.Equal(t, "Dana K.", u.Name)
	})

	t.Run("UpdateProfileWithoutSession", func(t *testing.T) {
		s := service.NewAuthStore(newFakeKV(), nil, nil)

		name := "Nobody"
		assert.False(t, s.UpdateProfile(t.Context(), domain.ProfileUpdate{Name: &name}))
	})

	t.Run("NoPlaintextPasswordPersisted", func(t *testing.T) {
		kv := newFakeKV()
		s := service.NewAuthStore(kv, nil, nil)
		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "pa55word-plain", domain.RoleBuyer))

		creds, err := kv.Load(service.UsersKey)
		require.NoError(t, err)
		assert.NotContains(t, string(creds), "pa55word-plain")
		assert.NotContains(t, string(creds), adminPassword)

		sess, err := kv.Load(service.SessionKey)
		require.NoError(t, err)
		assert.NotContains(t, string(sess), "pa55word-plain")
		assert.NotContains(t, string(sess), "passwordHash")
	})

	t.Run("SignupMirrorsPublicRecord", func(t *testing.T) {
		mirror := &recordingMirror{}
		s := service.NewAuthStore(newFakeKV(), mirror, nil)

		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))

		require.Len(t, mirror.users, 1)
		assert.Equal(t, "dana@example.com", mirror.users[0].Email)
	})

	t.Run("MirrorFailureDoesNotFailSignup", func(t *testing.T) {
		mirror := &recordingMirror{err: errStorageUnavailable}
		s := service.NewAuthStore(newFakeKV(), mirror, nil)

		assert.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))
	})

	t.Run("EmitsAuthEvents", func(t *testing.T) {
		events := &recordingProducer{}
		s := service.NewAuthStore(newFakeKV(), nil, events)

		require.True(t, s.Login(t.Context(), adminEmail, adminPassword))
		s.Logout(t.Context())
		require.True(t, s.Signup(t.Context(), "Dana", "dana@example.com", "s3cret", domain.RoleBuyer))

		assert.Equal(t, []domain.EventKind{
			domain.EventLogin,
			domain.EventLogout,
			domain.EventSignup,
		}, events.kinds())
	})
}
